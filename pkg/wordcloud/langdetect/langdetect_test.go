package langdetect

import (
	"sync"
	"testing"
)

// Building the statistical model is expensive; share one detector.
var (
	testDetector *Detector
	detectorOnce sync.Once
)

func sharedDetector() *Detector {
	detectorOnce.Do(func() { testDetector = New() })
	return testDetector
}

func TestDetectChinese(t *testing.T) {
	d := sharedDetector()
	for _, text := range []string{"鸡肉", "我喜欢打羽毛球", "今天天气很好"} {
		if got := d.Detect(text); got != Chinese {
			t.Errorf("Detect(%q) = %q, want zh", text, got)
		}
	}
}

func TestDetectEnglish(t *testing.T) {
	d := sharedDetector()
	for _, text := range []string{
		"I like chicken",
		"the weather is really nice today",
	} {
		if got := d.Detect(text); got != English {
			t.Errorf("Detect(%q) = %q, want en", text, got)
		}
	}
}

func TestDetectMalay(t *testing.T) {
	d := sharedDetector()
	for _, text := range []string{
		"saya suka makan nasi lemak",
		"makanan ini sangat sedap lah",
	} {
		if got := d.Detect(text); got != Malay {
			t.Errorf("Detect(%q) = %q, want ms", text, got)
		}
	}
}

func TestScriptOverrideBeatsStatistics(t *testing.T) {
	d := sharedDetector()
	// CJK plus Latin always classifies as mixed, whatever the model says.
	for _, text := range []string{
		"我喜欢chicken",
		"badminton 很好玩",
		"kfc的鸡肉",
	} {
		if got := d.Detect(text); got != Mixed {
			t.Errorf("Detect(%q) = %q, want mixed", text, got)
		}
	}
}

func TestEmptyInputDefaultsToEnglish(t *testing.T) {
	d := sharedDetector()
	for _, text := range []string{"", "   ", "\t\n"} {
		if got := d.Detect(text); got != English {
			t.Errorf("Detect(%q) = %q, want en default", text, got)
		}
	}
}

func TestDetectNeverFails(t *testing.T) {
	d := sharedDetector()
	// Junk input still yields one of the four tags.
	for _, text := range []string{"12345", "!!!", "ʕ•ᴥ•ʔ", "қазақша"} {
		got := d.Detect(text)
		switch got {
		case English, Chinese, Malay, Mixed:
		default:
			t.Errorf("Detect(%q) = %q, not a valid tag", text, got)
		}
	}
}

func TestContainsCJK(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"鸡肉", true},
		{"hello 鸡", true},
		{"hello", false},
		{"", false},
	}
	for _, c := range cases {
		if got := ContainsCJK(c.in); got != c.want {
			t.Errorf("ContainsCJK(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCustomMalayMarkers(t *testing.T) {
	d := New(WithMalayMarkers([]string{"syiok"}))
	// Forced through the fallback path only when the model is
	// unconfident, so just assert the tag is valid.
	got := d.Detect("syiok")
	switch got {
	case English, Chinese, Malay, Mixed:
	default:
		t.Errorf("Detect(syiok) = %q, not a valid tag", got)
	}
}
