package suggestion

import (
	"fmt"
	"regexp"
)

var rainPattern = regexp.MustCompile(`(?i)rain`)

const hotThreshold = 30.0

func isRainy(w WeatherFacts) bool {
	return w.Condition != "" && rainPattern.MatchString(w.Condition)
}

func isHot(w WeatherFacts) bool {
	return w.Temp != nil && *w.Temp >= hotThreshold
}

// FashionFallback 은 기온 구간별 옷차림 제안을 반환한다.
func FashionFallback(w WeatherFacts) Suggestion {
	if w.Temp == nil {
		return Suggestion{
			Title:   "Clothing suggestions",
			Bullets: []string{"Check local forecast", "Dress in layers", "Keep hydration in mind"},
			Summary: "No temperature data.",
			Reason:  "Local fallback: missing temperature.",
		}
	}

	t := *w.Temp
	temp := FormatNumber(w.Temp)
	switch {
	case t <= 0:
		return Suggestion{
			Title:   "Extreme cold — heavy protection",
			Bullets: []string{"Heavy insulated coat (down)", "Scarf, gloves, warm hat", "Insulated boots"},
			Summary: fmt.Sprintf("%s°C — very cold, prioritize insulation.", temp),
			Reason:  "Local fallback: temperature indicates extreme cold.",
		}
	case t <= 8:
		return Suggestion{
			Title:   "Cold — warm layers",
			Bullets: []string{"Thick jacket or sweater", "Scarf and gloves", "Warm shoes/boots"},
			Summary: fmt.Sprintf("%s°C — cold; use warm layers.", temp),
			Reason:  "Local fallback: cool temperature.",
		}
	case t <= 20:
		return Suggestion{
			Title:   "Mild — light jacket",
			Bullets: []string{"Light jacket or long sleeve", "Comfortable trousers", "Normal shoes fine"},
			Summary: fmt.Sprintf("%s°C — mild; light outerwear recommended.", temp),
			Reason:  "Local fallback: mild temperature.",
		}
	default:
		return Suggestion{
			Title:   "Hot — light & breathable",
			Bullets: []string{"Breathable short sleeves and shorts", "Hat and sunglasses", "Drink water frequently"},
			Summary: fmt.Sprintf("%s°C — hot; choose breathable clothes.", temp),
			Reason:  "Local fallback: warm temperature.",
		}
	}
}

// AgricultureFallback: 고온을 먼저, 그 다음 비를 확인합니다.
func AgricultureFallback(w WeatherFacts) Suggestion {
	location := w.Location()
	if isHot(w) {
		return Suggestion{
			Title:   fmt.Sprintf("Irrigation & heat precautions (%s)", location),
			Bullets: []string{"Increase irrigation in early morning/late evening", "Provide shade for sensitive crops", "Monitor soil moisture closely"},
			Summary: "High temperature; take measures to protect crops from heat stress.",
			Reason:  "Local fallback for hot and dry conditions.",
		}
	}
	if isRainy(w) {
		return Suggestion{
			Title:   fmt.Sprintf("Rain & drainage (%s)", location),
			Bullets: []string{"Ensure drainage to avoid waterlogging", "Delay fertilizer until fields dry", "Check for fungal signs"},
			Summary: "Rain increases disease risk; protect fields and manage drainage.",
			Reason:  "Local fallback for rainy conditions.",
		}
	}
	return Suggestion{
		Title:   fmt.Sprintf("General farm guidance (%s)", location),
		Bullets: []string{"Inspect irrigation schedule and soil moisture", "Check pest/disease signs", "Adjust field work schedule for safety"},
		Summary: "General actionable farm tips.",
		Reason:  "Local fallback: default safe guidance.",
	}
}

// TravelFallback: 비를 먼저, 그 다음 고온을 확인합니다.
func TravelFallback(w WeatherFacts) Suggestion {
	location := w.Location()
	if isRainy(w) {
		return Suggestion{
			Title:   fmt.Sprintf("Rain day tips (%s)", location),
			Bullets: []string{"Carry an umbrella & waterproof shoes", "Prefer indoor activities or covered walks", "Check public transport for delays"},
			Summary: "Rain may disrupt outdoor plans; prepare accordingly.",
			Reason:  "Local fallback for rainy travel situations.",
		}
	}
	if isHot(w) {
		return Suggestion{
			Title:   fmt.Sprintf("Hot day tips (%s)", location),
			Bullets: []string{"Plan activities in early morning/late evening", "Carry water and wear a hat", "Avoid strenuous activities during peak heat"},
			Summary: "High temperature; plan accordingly for heat safety.",
			Reason:  "Local fallback for hot travel days.",
		}
	}
	return Suggestion{
		Title:   fmt.Sprintf("Travel suggestions (%s)", location),
		Bullets: []string{"Bring a light jacket", "Plan flexible itinerary with indoor options", "Check local transit & opening hours"},
		Summary: "General travel guidance.",
		Reason:  "Local fallback: default travel suggestions.",
	}
}

// MusicFallback: 비를 먼저, 그 다음 고온을 확인합니다.
func MusicFallback(w WeatherFacts) Suggestion {
	location := w.Location()
	if isRainy(w) {
		return Suggestion{
			Title:   fmt.Sprintf("Rainy day comfort (%s)", location),
			Bullets: []string{"Lo-fi rain beats", "Mellow jazz", "Acoustic warmth"},
			Summary: "Comforting tracks for rainy moods.",
			Reason:  "Local fallback for rainy weather music.",
		}
	}
	if isHot(w) {
		return Suggestion{
			Title:   fmt.Sprintf("Upbeat summer picks (%s)", location),
			Bullets: []string{"Upbeat pop/dance", "Tropical house", "Summer hits playlist"},
			Summary: "Energizing music for hot days.",
			Reason:  "Local fallback for sunny/hot conditions.",
		}
	}
	return Suggestion{
		Title:   fmt.Sprintf("Chill suggestions (%s)", location),
		Bullets: []string{"Indie chill playlist", "Singer-songwriter set", "Relaxed instrumental mix"},
		Summary: "General mellow listening suggestions.",
		Reason:  "Local fallback: default music.",
	}
}
