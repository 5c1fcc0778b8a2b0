package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyInputBucket(t *testing.T) {
	testCases := map[string]struct {
		input    string
		expected inputBucket
	}{
		"Greeting":         {"Hello assistant", bucketGreeting},
		"GoodMorning":      {"good morning!", bucketGreeting},
		"Help":             {"how do I change my password", bucketHelp},
		"Support":          {"I need support with billing", bucketHelp},
		"Reminder":         {"remind me to water the plants", bucketReminder},
		"Task":             {"create a task for tomorrow", bucketReminder},
		"Search":           {"find my invoices", bucketSearch},
		"ShowMe":           {"show me the latest articles", bucketSearch},
		"Generic":          {"tell me a joke", bucketGeneric},
		"DeterministicTie": {"hello, how do I search", bucketGreeting},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyInputBucket(tc.input))
			// Same input, same bucket on repeat.
			assert.Equal(t, tc.expected, classifyInputBucket(tc.input))
		})
	}
}

func TestBucketTitlesAndSuggestions(t *testing.T) {
	for _, bucket := range []inputBucket{bucketGreeting, bucketHelp, bucketReminder, bucketSearch, bucketGeneric} {
		assert.NotEmpty(t, bucketTitle(bucket))
		suggestions := bucketSuggestions(bucket)
		assert.NotEmpty(t, suggestions)
		assert.LessOrEqual(t, len(suggestions), 3)
	}
}

func TestSpeechText(t *testing.T) {
	testCases := map[string]struct {
		input    string
		expected string
	}{
		"StripsEmphasis":  {"This is **really** important and _subtle_.", "This is really important and subtle."},
		"StripsBullets":   {"Here you go:\n- first item\n- second item", "Here you go: first item second item"},
		"StarBullets":     {"* one\n* two", "one two"},
		"CollapsesSpaces": {"too   many    spaces", "too many spaces"},
		"PlainUnchanged":  {"Nothing to strip here.", "Nothing to strip here."},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, speechText(tc.input))
		})
	}
}

func TestSniffSafety(t *testing.T) {
	testCases := map[string]struct {
		text               string
		expectedPII        bool
		expectedDisclaimer bool
	}{
		"Clean":       {"The weather is sunny today.", false, false},
		"Email":       {"Contact me at jane.doe@example.com for details.", true, false},
		"Phone":       {"Call +1 555 123 4567 tomorrow.", true, false},
		"SSNShape":    {"The number 123-45-6789 appeared.", true, false},
		"Medical":     {"This is not a medical diagnosis.", false, true},
		"LegalAdvice": {"I cannot give legal advice.", false, true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			info := sniffSafety(tc.text)
			assert.Equal(t, tc.expectedPII, info.ContainsPII)
			assert.Equal(t, tc.expectedDisclaimer, info.NeedsDisclaimer)
			assert.False(t, info.Refused)
		})
	}
}
