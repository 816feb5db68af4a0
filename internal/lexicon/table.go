package lexicon

// Entry maps a native-script, romanized, or English surface form to a
// canonical English target. Targets may hold more than one word.
type Entry struct {
	Key    string `yaml:"key"`
	Target string `yaml:"target"`
}

// defaultEntries is scanned in order. Overlapping keys (e.g. "कम" and
// "कम हो गई") all contribute their targets.
var defaultEntries = []Entry{
	// Hindi and Hinglish
	{"वजन", "weight"},
	{"वज़न", "weight"},
	{"weight", "weight"},
	{"badal", "change"},
	{"बदल", "change"},
	{"बदल रहा", "change"},
	{"बाल", "hair"},
	{"baal", "hair"},
	{"झड़", "fall"},
	{"जड़", "fall"},
	{"jhad", "fall"},
	{"बुखार", "fever"},
	{"bukhar", "fever"},
	{"खांसी", "cough"},
	{"सूखी", "dry"},
	{"सूखा", "dry"},
	{"सूखी खांसी", "dry cough"},
	{"सूंघने", "smell"},
	{"सूँघने", "smell"},
	{"सूंघ", "smell"},
	{"सूँघ", "smell"},
	{"गंध", "smell"},
	{"खुशबू", "smell"},
	{"महक", "smell"},
	{"कमी", "loss"},
	{"कम", "loss"},
	{"क्षमता में कमी", "loss"},
	{"क्षमता कम", "loss"},
	{"कम हो गई", "loss"},
	{"कम हो गया", "loss"},
	{"कम हो गयी", "loss"},
	{"सूंघने की क्षमता में कमी", "loss smell"},
	{"सूँघने की क्षमता में कमी", "loss smell"},
	{"गंध की क्षमता में कमी", "loss smell"},
	{"महक की क्षमता में कमी", "loss smell"},
	{"khansi", "cough"},
	{"sukhi", "dry"},
	{"sukha", "dry"},
	{"soonghne", "smell"},
	{"sungne", "smell"},
	{"kami", "loss"},
	{"jukam", "cold"},
	{"छींक", "sneezing"},
	{"छींकें", "sneezing"},
	{"छींके", "sneezing"},
	{"नाक", "nose"},
	{"बह रही", "runny"},
	{"बहता", "runny"},
	{"बहती", "runny"},
	{"बहना", "runny"},
	{"नाक बह", "runny"},
	{"गला", "throat"},
	{"खराश", "sore"},
	{"गले में खराश", "sore"},
	{"सर्दी", "cold"},
	{"जुकाम", "cold"},
	{"सरदर्द", "headache"},
	{"सिरदर्द", "headache"},
	{"दर्द", "pain"},
	{"पेट", "stomach"},
	{"उल्टी", "vomiting"},
	{"दस्त", "diarrhea"},
	{"कमजोरी", "fatigue"},

	// Gujarati
	{"વજન", "weight"},
	{"વઝન", "weight"},
	{"બદલ", "change"},
	{"બદલાય", "change"},
	{"બદલાઈ", "change"},
	{"બદલી", "change"},
	{"ફેરફાર", "change"},
	{"વાળ", "hair"},
	{"વલ", "hair"},
	{"ખર", "fall"},
	{"ખરે", "fall"},
	{"ખરવા", "fall"},
	{"ખરી", "fall"},
	{"ઉતરે", "fall"},
	{"ઉતર", "fall"},
	{"તાવ", "fever"},
	{"ખાંસી", "cough"},
	{"સૂકી", "dry"},
	{"સૂકો", "dry"},
	{"સુગંધ", "smell"},
	{"વાસ", "smell"},
	{"ઘ્રાણ", "smell"},
	{"કમી", "loss"},
	{"ઓછી", "loss"},
	{"ઓછી થઈ", "loss"},
	{"ઘટે", "loss"},
	{"ઘટી", "loss"},
	{"ઘટી ગઈ", "loss"},
	{"ઘટેલી", "loss"},
	{"સુગંધની ક્ષમતા ઓછી", "loss smell"},
	{"છીંક", "sneezing"},
	{"છીંકો", "sneezing"},
	{"નાક", "nose"},
	{"વહે", "runny"},
	{"નાક વહે", "runny"},
	{"ગળું", "throat"},
	{"ખરાશ", "sore"},
	{"શરદી", "cold"},
	{"ઠંડી", "cold"},
	{"માથાનો દુખાવો", "headache"},
	{"દુખાવો", "pain"},
	{"પેટ", "stomach"},
	{"ઉલ્ટી", "vomiting"},
	{"ઝાડા", "diarrhea"},
	{"થાક", "fatigue"},
}

var defaultStopwords = []string{"a", "an", "and", "for", "in", "of", "on", "the", "to", "with"}

// suffixes are tried in order; the first applicable one wins.
var suffixes = []string{"ing", "edly", "ed", "ly", "es", "s"}
