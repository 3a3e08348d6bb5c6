package models

// ConsequenceRecord is one narrative climate-impact item sourced from the
// generative model and defensively validated.
type ConsequenceRecord struct {
	Description string `json:"description"`
	ImpactLevel int    `json:"impact_level"`
	Icon        string `json:"icon"`
}

// ConsequenceCount is the fixed number of records returned per horizon.
const ConsequenceCount = 5

// DefaultIcon substitutes any icon not present in the fixed vocabulary.
const DefaultIcon = "ban"

// DefaultImpactLevel substitutes any impact level that fails integer
// coercion.
const DefaultImpactLevel = 3

// Icons is the fixed vocabulary the generative model may pick from.
// Matches the FontAwesome subset rendered by the frontend.
var Icons = []string{
	"industry", "smog", "fire", "car", "truck", "gas-pump", "oil-can", "temperature-high", "thermometer-full", "sun", "cloud-sun", "wind",
	"tornado", "cloud-showers-heavy", "bolt", "solar-panel", "water", "leaf", "recycle", "seedling", "plug", "charging-station", "mountain",
	"fire-flame-curved", "skull-crossbones", "house-flood-water", "tree", "fish", "ban", "chart-line", "chart-bar", "globe", "satellite", "microscope",
	"vial", "filter", "database", "hands-helping", "hand-holding-heart", "lightbulb", "bicycle", "bus", "trash-alt", "shopping-bag", "users", "cloud",
	"umbrella", "snowflake", "icicles", "volcano", "earth-americas", "compass", "map", "mountain-sun", "hill-rockslide", "water-ladder", "droplet",
	"droplet-slash", "fire-extinguisher", "radiation", "biohazard", "trash", "dumpster", "dumpster-fire", "receipt", "cube", "cubes", "flask",
	"atom", "virus", "virus-slash", "bacteria", "bacterium", "mask-face", "hand-sparkles", "hand-holding-water", "spa", "feather", "kiwi-bird",
	"crow", "frog", "hippo", "otter", "dragon", "paw", "campground", "tent", "hiking", "mountain-city", "city", "building", "home", "ship", "plane", "train",
	"subway", "motorcycle", "traffic-light", "road", "bridge",
}

var iconSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Icons))
	for _, icon := range Icons {
		set[icon] = struct{}{}
	}
	return set
}()

// IsValidIcon reports whether icon belongs to the fixed vocabulary.
func IsValidIcon(icon string) bool {
	_, ok := iconSet[icon]
	return ok
}

// FillerConsequence returns the record used to pad partially valid
// generative output up to ConsequenceCount entries.
func FillerConsequence() ConsequenceRecord {
	return ConsequenceRecord{
		Description: "Aumento de forzamiento radiativo por mayor CO₂ atmosférico.",
		ImpactLevel: 5,
		Icon:        "temperature-high",
	}
}

// FallbackConsequences returns the fixed list served when the generative
// output cannot be parsed at all. It is never persisted.
func FallbackConsequences() []ConsequenceRecord {
	return []ConsequenceRecord{
		{Description: "La tasa acelerada de incremento de CO₂ intensifica el forzamiento radiativo.", ImpactLevel: 5, Icon: "temperature-high"},
		{Description: "Acidificación oceánica por mayor absorción de CO₂.", ImpactLevel: 4, Icon: "droplet"},
		{Description: "Mayor frecuencia e intensidad de eventos extremos.", ImpactLevel: 5, Icon: "cloud-showers-heavy"},
		{Description: "Aceleración del derretimiento de glaciares.", ImpactLevel: 4, Icon: "snowflake"},
		{Description: "Estrés ecológico y pérdida de biodiversidad.", ImpactLevel: 4, Icon: "leaf"},
	}
}
