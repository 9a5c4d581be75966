package projects

var languageColors = map[string]string{
	"JavaScript": "bg-yellow-400",
	"TypeScript": "bg-blue-500",
	"HTML":       "bg-orange-500",
	"CSS":        "bg-blue-400",
	"Python":     "bg-green-500",
	"Java":       "bg-red-500",
	"C#":         "bg-purple-500",
	"PHP":        "bg-indigo-500",
	"Go":         "bg-cyan-500",
	"Rust":       "bg-orange-600",
	"Ruby":       "bg-red-600",
	"Dart":       "bg-cyan-400",
	"Swift":      "bg-orange-500",
	"Kotlin":     "bg-purple-400",
}

// LanguageColor is the CSS class of the language dot.
func LanguageColor(language string) string {
	if c, ok := languageColors[language]; ok {
		return c
	}
	return "bg-gray-500"
}

// TopicsPreview returns at most limit topics and how many were left out.
func TopicsPreview(topics []string, limit int) (shown []string, more int) {
	if len(topics) <= limit {
		return topics, 0
	}
	return topics[:limit], len(topics) - limit
}
