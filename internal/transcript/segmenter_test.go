package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEmpty(t *testing.T) {
	assert.Empty(t, Parse(""))
	assert.Empty(t, Parse("  \n\n  "))
}

func TestParseNoSpeakerDetected(t *testing.T) {
	segments := Parse("Hello, welcome.")
	require.Len(t, segments, 1)
	assert.Equal(t, FallbackSpeaker, segments[0].Speaker)
	assert.Equal(t, "Hello, welcome.", segments[0].Text)
}

func TestParseSingleSpeaker(t *testing.T) {
	segments := Parse("John Smith: Good morning everyone.")
	require.Len(t, segments, 1)
	assert.Equal(t, "John Smith", segments[0].Speaker)
	assert.Equal(t, "Good morning everyone.", segments[0].Text)
}

func TestParseMultipleSpeakers(t *testing.T) {
	text := "Jane Doe: Thank you for joining us today.\n" +
		"\n" +
		"We had a strong quarter across all segments.\n" +
		"\n" +
		"Tom Brown: Thanks Jane. Turning to the numbers.\n" +
		"\n" +
		"Gross margin expanded by 80 basis points."

	segments := Parse(text)
	require.Len(t, segments, 2)

	assert.Equal(t, "Jane Doe", segments[0].Speaker)
	assert.Equal(t, "Thank you for joining us today. We had a strong quarter across all segments.", segments[0].Text)

	assert.Equal(t, "Tom Brown", segments[1].Speaker)
	assert.Equal(t, "Thanks Jane. Turning to the numbers. Gross margin expanded by 80 basis points.", segments[1].Text)
}

func TestParseSpeakerLineWithoutText(t *testing.T) {
	text := "Operator:\n\nPlease hold for the next question."

	segments := Parse(text)
	require.Len(t, segments, 1)
	assert.Equal(t, "Operator", segments[0].Speaker)
	assert.Equal(t, "Please hold for the next question.", segments[0].Text)
}

func TestParseLowercaseLeadNotASpeaker(t *testing.T) {
	segments := Parse("the quarter: it went well.")
	require.Len(t, segments, 1)
	assert.Equal(t, FallbackSpeaker, segments[0].Speaker)
}

func TestParseTitledSpeaker(t *testing.T) {
	segments := Parse("Mr. James Wilson: Let me start with guidance.")
	require.Len(t, segments, 1)
	assert.Equal(t, "Mr. James Wilson", segments[0].Speaker)
	assert.Equal(t, "Let me start with guidance.", segments[0].Text)
}
