package sequence_test

import (
	"testing"

	"github.com/arthur-debert/frameseq/pkg/sequence"
	"github.com/stretchr/testify/assert"
)

func TestFramePrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"padded index", "img_0001.png", "img_.png"},
		{"inner digits kept", "take2_0001.png", "take2_.png"},
		{"no digits", "notes.txt", "notes.txt"},
		{"unpadded index", "frame10.jpg", "frame.jpg"},
		{"only digits", "12.png", ".png"},
		{"last run only", "a1b22c.png", "a1bc.png"},
		{"digits in extension", "clip.mp4", "clip.mp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sequence.FramePrefix(tt.input))
		})
	}
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "", sequence.CommonPrefix(nil))
	assert.Equal(t, "abc", sequence.CommonPrefix([]string{"abc"}))
	assert.Equal(t, "shot_00", sequence.CommonPrefix([]string{"shot_001", "shot_002"}))
	assert.Equal(t, "", sequence.CommonPrefix([]string{"a", "b"}))
	assert.Equal(t, "ab", sequence.CommonPrefix([]string{"abc", "ab", "abd"}))
}

func TestSequencePrefix(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected string
	}{
		{"numbered", []string{"shot_001.png", "shot_002.png"}, "shot_"},
		{"unrelated", []string{"a.png", "b.png"}, ""},
		{"single file keeps stem", []string{"take.png"}, "take"},
		{"single numbered file", []string{"take12.png"}, "take"},
		{"upper case", []string{"IMG_0001.PNG", "IMG_0002.PNG"}, "IMG_"},
		{"mixed lengths", []string{"take1.png", "take12.png"}, "take"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sequence.SequencePrefix(tt.input))
		})
	}
}

func TestFrameName(t *testing.T) {
	assert.Equal(t, "shot_0003.png", sequence.FrameName("shot_", 3, 4, ".png"))
	assert.Equal(t, "12.JPG", sequence.FrameName("", 12, 2, ".JPG"))
	assert.Equal(t, "x12345.png", sequence.FrameName("x", 12345, 4, ".png"))
	assert.Equal(t, "x0000.jpeg", sequence.FrameName("x", 0, sequence.DefaultPadding, ".jpeg"))
}

func TestStem(t *testing.T) {
	assert.Equal(t, "shot_0001", sequence.Stem("shot_0001.png"))
	assert.Equal(t, "archive.tar", sequence.Stem("archive.tar.gz"))
	assert.Equal(t, "noext", sequence.Stem("noext"))
}
