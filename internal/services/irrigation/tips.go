package irrigation

import "AgriPulse/internal/domain/models"

var cropTips = map[string][]string{
	"tomato": {
		"Water at the base of the plant to keep foliage dry and reduce blight risk.",
		"Keep moisture even during fruit set; swings cause blossom-end rot and cracking.",
		"Mulch around plants to slow evaporation between waterings.",
	},
	"onion": {
		"Shallow roots need frequent light watering rather than deep soaks.",
		"Stop watering once tops begin to fall over, ahead of harvest.",
		"Avoid waterlogging; standing water promotes bulb rot.",
	},
	"potato": {
		"Keep moisture steady during tuber formation to avoid knobby tubers.",
		"Hill soil around stems and water the furrows, not the foliage.",
		"Reduce watering as vines die back before harvest.",
	},
	"wheat": {
		"Critical watering stages are crown root initiation and grain filling.",
		"Light, infrequent irrigation suits wheat; overwatering invites rust.",
		"Skip irrigation if rain fell within the last three days.",
	},
	"rice": {
		"Maintain standing water of 2-5 cm through the vegetative stage.",
		"Drain the field briefly at mid-tillering to strengthen roots.",
		"Alternate wetting and drying saves water without hurting yield.",
	},
	"sugarcane": {
		"Irrigate furrows deeply but infrequently to push roots down.",
		"The formative phase (first 120 days) is the most water-sensitive.",
		"Trash mulching between rows cuts evaporation losses sharply.",
	},
}

// Tips returns the static watering tips for a crop.
func (e *Engine) Tips(crop string) ([]string, error) {
	if _, err := e.Profile(crop); err != nil {
		return nil, err
	}
	return cropTips[crop], nil
}

// IdealIrrigationWindow reports whether current conditions favor
// irrigating right now: mild temperature, enough humidity to limit
// evaporation, early morning or evening, and low wind.
func IdealIrrigationWindow(w models.WeatherSnapshot, hour int) bool {
	return w.Temperature >= 15 && w.Temperature <= 30 &&
		w.Humidity >= 40 &&
		(hour <= 10 || hour >= 17) &&
		w.WindSpeed <= 15
}
