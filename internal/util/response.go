package util

type Envelope map[string]any

func Error(message string) Envelope {
	return Envelope{"error": message}
}

// ValidationError is the 400 body listing every violated rule.
func ValidationError(message string, details []string) Envelope {
	return Envelope{"error": message, "details": details}
}

func Data(key string, value any) Envelope {
	return Envelope{key: value}
}
