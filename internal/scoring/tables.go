package scoring

// Fixed scoring tables for the Talent Portrait assessment. Item-to-scale
// assignments, per-scale maxima and level cut-points are psychometric
// constants; they are loaded once at process start and never regenerated.

// Qualitative levels shared by every sub-pass.
const (
	LevelLow          = "low"
	LevelPotential    = "potential"
	LevelMedium       = "medium"
	LevelHigh         = "high"
	LevelVeryHigh     = "very_high"
	LevelBelowAverage = "below_average"
	LevelAboveAverage = "above_average"
)

// One fixed sentence per level name, independent of which scale produced
// the level.
var levelDescriptions = map[string]string{
	LevelLow:          "Low level of competency development",
	LevelPotential:    "Potential for competency development",
	LevelMedium:       "Medium level of competency development",
	LevelHigh:         "High level of competency development",
	LevelVeryHigh:     "Very high level of competency development",
	LevelBelowAverage: "Below average level",
	LevelAboveAverage: "Above average level",
}

const undefinedLevelDescription = "Level not determined"

// Business archetypes: four scales of 12 items each, raw range 0-48.
var archetypeScales = []string{"P", "A", "E", "I"}

// Raw score → standardized percentage. Linear (score*100/48) below 25,
// hand-tuned curve from 25 to 48. The curve points are fixed constants,
// not a formula.
var archetypePercentMap = buildArchetypePercentMap()

func buildArchetypePercentMap() map[int]float64 {
	m := make(map[int]float64, 49)
	for score := 0; score < 25; score++ {
		m[score] = float64(score) * 100 / 48
	}
	for score, percent := range map[int]float64{
		25: 40.0, 26: 46.7, 27: 53.3, 28: 60.0, 29: 66.7,
		30: 68.41, 31: 70.17, 32: 71.92, 33: 73.68, 34: 75.43,
		35: 77.19, 36: 78.94, 37: 80.69, 38: 82.45, 39: 84.20,
		40: 85.96, 41: 87.71, 42: 89.46, 43: 91.22, 44: 92.97,
		45: 94.73, 46: 96.48, 47: 98.24, 48: 100.0,
	} {
		m[score] = percent
	}
	return m
}

type itemScale struct {
	Name  string
	Items []int
}

// Emotional intelligence: five sub-scales of six 1_Qnn items each.
var eiScales = []itemScale{
	{"awareness", []int{13, 14, 16, 19, 25, 32}},
	{"management", []int{15, 18, 21, 24, 30, 33}},
	{"self_motivation", []int{17, 20, 22, 26, 28, 35}},
	{"empathy", []int{23, 27, 29, 31, 34, 36}},
	{"managing_others", []int{37, 38, 39, 40, 41, 42}},
}

type teamRole struct {
	Name       string
	Codes      []string
	MaxScore   float64
	Thresholds [4]float64 // low, medium, high, very high
}

var teamRoles = []teamRole{
	{"Im", []string{"B7", "D1", "F8", "H4", "J2", "L6", "N5"}, 23, [4]float64{6, 12, 17, 23}},
	{"CO", []string{"B4", "D2", "F1", "H8", "J6", "L3", "N7"}, 18, [4]float64{6, 10, 14, 18}},
	{"Sh", []string{"B6", "D5", "F3", "H2", "J4", "L7", "N1"}, 36, [4]float64{8, 14, 18, 36}},
	{"Pl", []string{"B3", "D7", "F4", "H5", "J8", "L1", "N6"}, 29, [4]float64{4, 8, 13, 29}},
	{"RI", []string{"B1", "D3", "F6", "H7", "J5", "L8", "N4"}, 21, [4]float64{6, 10, 12, 21}},
	{"ME", []string{"B8", "D4", "F7", "H3", "J1", "L5", "N2"}, 19, [4]float64{5, 9, 13, 19}},
	{"TW", []string{"B2", "D6", "F5", "H1", "J3", "L2", "N8"}, 25, [4]float64{8, 13, 17, 25}},
	{"CF", []string{"B5", "D8", "F2", "H6", "J7", "L4", "N3"}, 17, [4]float64{3, 6, 10, 17}},
}

type factorScale struct {
	Name  string
	Codes []string
}

// Motivation: per-item values come from the "left" sub-field of a paired
// distribution answer, seven items per factor, item max 5 (raw max 35).
var hygieneFactors = []factorScale{
	{"financial", []string{"B1", "B8", "B14", "B15", "B22", "B23", "B46"}},
	{"recognition", []string{"B2", "B9", "B18", "B19", "B30", "B36", "B49"}},
	{"management", []string{"B3", "B16", "B32", "B35", "B40", "B41", "B5"}},
	{"collaboration", []string{"B11", "B20", "B25", "B31", "B45", "B51", "B55"}},
}

var motivationFactors = []factorScale{
	{"responsibility", []string{"B4", "B13", "B17", "B26", "B27", "B33", "B47"}},
	{"career", []string{"B7", "B28", "B37", "B42", "B44", "B50", "B52"}},
	{"achievement", []string{"B24", "B29", "B38", "B39", "B48", "B53", "B56"}},
	{"content", []string{"B10", "B12", "B21", "B34", "B43", "B54", "B6"}},
}

// Cognitive battery answer key. Values are graded by dynamic type:
// string → case-folded exact text, number → numeric with 0.01 tolerance,
// []string → multi-select set equality. Reference answers are kept in the
// assessment's original wording.
var iqAnswerKey = map[string]any{
	"q1": "ноябрь", "q2": "мягкий", "q3": "доверие", "q4": "ДА",
	"q5": "слушать", "q6": "непристойный", "q7": "зубы", "q8": 1.0,
	"q9": "тусклый", "q10": 40.0, "q11": "ни сходное, ни противоположное",
	"q12": 270.0, "q13": 4.0, "q14": "чужой", "q15": 0.31, "q16": "НИ",
	"q17": 4.0, "q18": 4.0, "q19": "ни сходное, ни противоположное",
	"q20": "Неправильно", "q21": []string{"2", "4"}, "q22": 31.0, "q23": "марте",
	"q24": "верно", "q25": 1500.0, "q26": "верно", "q27": 1.0,
	"q28": "ни схожи, ни противоположны", "q29": "2-13", "q30": "неопределенно",
	"q31": 1600.0, "q32": []string{"1", "2", "4"}, "q33": 18.0, "q34": "ни сходны, ни противоположны",
	"q35": "сходны", "q36": "схож", "q37": 4.8, "q38": "схожи", "q39": 20.0,
	"q40": 0.125, "q41": "ни сходными, ни противоположными", "q42": 14.0,
	"q43": "сходны", "q44": 800.0, "q45": 0.1, "q46": 280.0, "q47": []string{"3", "4"},
	"q48": "сходно", "q49": 3.0, "q50": 17.0,
}

var iqSubscales = []factorScale{
	{"knowledge", []string{"q1", "q4", "q23"}},
	{"attention", []string{"q8", "q13"}},
	{"spatial", []string{"q17", "q29", "q32", "q49"}},
	{"logical", []string{"q3", "q7", "q9", "q16"}},
	{"verbal", []string{
		"q2", "q5", "q6", "q11", "q14", "q19", "q20", "q21",
		"q24", "q26", "q28", "q30", "q34", "q35", "q36", "q38",
		"q41", "q43", "q47", "q48",
	}},
	{"math", []string{
		"q10", "q12", "q15", "q18", "q22", "q25", "q27", "q31",
		"q33", "q37", "q39", "q40", "q42", "q44", "q45", "q46", "q50",
	}},
}
