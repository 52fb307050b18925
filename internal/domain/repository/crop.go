package repository

// Crop identifies a supported crop.
type Crop string

const (
	CropTomato    Crop = "tomato"
	CropOnion     Crop = "onion"
	CropPotato    Crop = "potato"
	CropWheat     Crop = "wheat"
	CropRice      Crop = "rice"
	CropSugarcane Crop = "sugarcane"
)

// AllCrops lists every supported crop.
func AllCrops() []Crop {
	return []Crop{CropTomato, CropOnion, CropPotato, CropWheat, CropRice, CropSugarcane}
}

// IsValidCrop returns true if c is a supported crop.
func IsValidCrop(c Crop) bool {
	switch c {
	case CropTomato, CropOnion, CropPotato, CropWheat, CropRice, CropSugarcane:
		return true
	default:
		return false
	}
}

// DefaultCrop returns the default crop for screens that need one preselected.
func DefaultCrop() Crop { return CropTomato }

// NormalizeCrop converts a raw string to a valid crop (or default).
func NormalizeCrop(s string) Crop {
	if s == "" {
		return DefaultCrop()
	}
	c := Crop(s)
	if IsValidCrop(c) {
		return c
	}
	return DefaultCrop()
}
