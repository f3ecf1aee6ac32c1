package classify_test

import (
	"reflect"
	"testing"

	"vidaudit/internal/classify"
	"vidaudit/internal/stream"
)

func TestClassifyResolutionTiers(t *testing.T) {
	cases := []struct {
		w, h int
		want classify.ResolutionTier
		sev  classify.Severity
	}{
		{1280, 720, classify.ResolutionLow, classify.SeverityWarn},
		{1919, 1080, classify.ResolutionLow, classify.SeverityWarn},
		{1920, 1079, classify.ResolutionLow, classify.SeverityWarn},
		{1920, 1080, classify.ResolutionStandard1080p, classify.SeverityInfo},
		{2560, 1440, classify.ResolutionStandard1080p, classify.SeverityInfo},
		{3840, 2159, classify.ResolutionStandard1080p, classify.SeverityInfo},
		{3840, 2160, classify.ResolutionUltraHD4K, classify.SeverityGood},
		{4096, 2160, classify.ResolutionUltraHD4K, classify.SeverityGood},
		{1080, 1920, classify.ResolutionStandard1080p, classify.SeverityInfo},
	}
	for _, tc := range cases {
		got := classify.ClassifyResolution(tc.w, tc.h)
		if got.Tier != tc.want || got.Severity != tc.sev {
			t.Fatalf("ClassifyResolution(%d, %d) = %s/%s, want %s/%s", tc.w, tc.h, got.Tier, got.Severity, tc.want, tc.sev)
		}
	}
}

func TestClassifyResolutionOrientationSymmetry(t *testing.T) {
	sizes := []int{1, 720, 1079, 1080, 1440, 1919, 1920, 2159, 2160, 3839, 3840, 4096, 7680}
	for _, w := range sizes {
		for _, h := range sizes {
			a := classify.ClassifyResolution(w, h)
			b := classify.ClassifyResolution(h, w)
			if a.Tier != b.Tier || a.Severity != b.Severity {
				t.Fatalf("tier not symmetric for %dx%d: %s vs %s", w, h, a.Tier, b.Tier)
			}
		}
	}
}

func TestClassifyFramerateBoundaries(t *testing.T) {
	cases := []struct {
		rate    float64
		want    classify.FramerateTier
		display float64
	}{
		{27.99, classify.FramerateLow, 28},
		{24, classify.FramerateLow, 24},
		{28.0, classify.FramerateOther, 28},
		{28.9, classify.FramerateOther, 28.9},
		{29.0, classify.FramerateNormal, 30},
		{29.97, classify.FramerateNormal, 30},
		{31.0, classify.FramerateNormal, 30},
		{31.1, classify.FramerateOther, 31.1},
		{50, classify.FramerateOther, 50},
		{55, classify.FramerateHigh, 60},
		{65.0, classify.FramerateHigh, 60},
		{65.01, classify.FramerateOther, 65},
		{65.1, classify.FramerateOther, 65.1},
		{120, classify.FramerateOther, 120},
	}
	for _, tc := range cases {
		got := classify.ClassifyFramerate(tc.rate, 1)
		if got.Tier != tc.want {
			t.Fatalf("rate %v: got tier %s, want %s", tc.rate, got.Tier, tc.want)
		}
		if got.DisplayFPS != tc.display {
			t.Fatalf("rate %v: got display %v, want %v", tc.rate, got.DisplayFPS, tc.display)
		}
	}
}

func TestClassifyFramerateUnknown(t *testing.T) {
	for _, tc := range []struct{ num, den float64 }{{30, 0}, {0, 1}, {0, 0}} {
		got := classify.ClassifyFramerate(tc.num, tc.den)
		if got.Tier != classify.FramerateUnknown || got.Severity != classify.SeverityNeutral {
			t.Fatalf("%v/%v: expected unknown/neutral, got %s/%s", tc.num, tc.den, got.Tier, got.Severity)
		}
		if got.DisplayFPS != 0 {
			t.Fatalf("%v/%v: expected display unset, got %v", tc.num, tc.den, got.DisplayFPS)
		}
		if got.Display() != "unknown" {
			t.Fatalf("unexpected display %q", got.Display())
		}
	}
}

func TestFramerateDisplay(t *testing.T) {
	if got := classify.ClassifyFramerate(60000, 1001).Display(); got != "60 fps" {
		t.Fatalf("unexpected high display %q", got)
	}
	if got := classify.ClassifyFramerate(24000, 1001).Display(); got != "24.0 fps" {
		t.Fatalf("unexpected low display %q", got)
	}
	if got := classify.ClassifyFramerate(50, 1).Display(); got != "50.0 fps" {
		t.Fatalf("unexpected other display %q", got)
	}
}

func TestClassifyScenarioStandardSDR(t *testing.T) {
	f := classify.Classify("/media/a.mp4", stream.Metadata{
		Width: 1920, Height: 1080,
		FrameRateNumerator: 30, FrameRateDenominator: 1,
		ColorTransfer: "bt709",
	})
	if f.Resolution.Tier != classify.ResolutionStandard1080p {
		t.Fatalf("unexpected resolution %s", f.Resolution.Tier)
	}
	if f.Framerate.Tier != classify.FramerateNormal || f.Framerate.DisplayFPS != 30 {
		t.Fatalf("unexpected framerate %+v", f.Framerate)
	}
	if f.Color.Tier != classify.ColorSDR || f.Color.HDR || f.Color.OtherNonStandard {
		t.Fatalf("unexpected color %+v", f.Color)
	}
	if f.RowSeverity != classify.SeverityInfo || f.Bucket != classify.BucketInfo {
		t.Fatalf("unexpected row %s/%s", f.RowSeverity, f.Bucket)
	}
	if f.Color.Display() != "SDR" {
		t.Fatalf("unexpected color display %q", f.Color.Display())
	}
}

func TestClassifyScenarioUltraHDHDR(t *testing.T) {
	f := classify.Classify("/media/b.mkv", stream.Metadata{
		Width: 3840, Height: 2160,
		FrameRateNumerator: 60000, FrameRateDenominator: 1001,
		ColorTransfer: "smpte2084",
	})
	if f.Resolution.Tier != classify.ResolutionUltraHD4K {
		t.Fatalf("unexpected resolution %s", f.Resolution.Tier)
	}
	if f.Framerate.Tier != classify.FramerateHigh || f.Framerate.DisplayFPS != 60 {
		t.Fatalf("unexpected framerate %+v", f.Framerate)
	}
	if f.Color.Tier != classify.ColorHDR || !f.IsHDR() {
		t.Fatalf("expected HDR, got %+v", f.Color)
	}
	if f.Bucket != classify.BucketHDR {
		t.Fatalf("expected HDR bucket, got %s", f.Bucket)
	}
}

func TestClassifyScenarioHighBitDepth(t *testing.T) {
	f := classify.Classify("/media/c.mov", stream.Metadata{
		Width: 1280, Height: 720,
		FrameRateNumerator: 24, FrameRateDenominator: 1,
		PixelFormat: "yuv420p10le",
	})
	if f.Resolution.Tier != classify.ResolutionLow {
		t.Fatalf("unexpected resolution %s", f.Resolution.Tier)
	}
	if f.Framerate.Tier != classify.FramerateLow {
		t.Fatalf("unexpected framerate %s", f.Framerate.Tier)
	}
	if f.Color.Tier != classify.ColorHighBitDepth || !f.Color.OtherNonStandard {
		t.Fatalf("expected high bit depth, got %+v", f.Color)
	}
	if f.RowSeverity != classify.SeverityWarn || f.Bucket != classify.BucketWarn {
		t.Fatalf("unexpected row %s/%s", f.RowSeverity, f.Bucket)
	}
}

func TestHDRBucketKeepsWarnVisible(t *testing.T) {
	f := classify.Classify("/media/d.mp4", stream.Metadata{
		Width: 1280, Height: 720,
		FrameRateNumerator: 30, FrameRateDenominator: 1,
		ColorTransfer: "arib-std-b67",
	})
	if f.Bucket != classify.BucketHDR {
		t.Fatalf("expected HDR bucket, got %s", f.Bucket)
	}
	if !f.IsWarn() || !f.IsHDR() {
		t.Fatalf("expected both warn and HDR facts, got row=%s hdr=%v", f.RowSeverity, f.IsHDR())
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	md := stream.Metadata{
		Width: 1920, Height: 1080,
		FrameRateNumerator: 25, FrameRateDenominator: 1,
		ColorTransfer: "bt2020", ColorPrimaries: "p3", ColorSpace: "bt2020nc", PixelFormat: "yuv444p",
	}
	a := classify.Classify("/x.mp4", md)
	b := classify.Classify("/x.mp4", md)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("classification not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestClassifyRAWFlag(t *testing.T) {
	cases := []struct {
		path string
		md   stream.Metadata
		want bool
	}{
		{"/a/clip.R3D", stream.Metadata{}, true},
		{"/a/clip.mov", stream.Metadata{CodecName: "prores_raw"}, true},
		{"/a/clip.mov", stream.Metadata{CodecTag: "aprn"}, true},
		{"/a/clip.mov", stream.Metadata{CodecName: "prores"}, false},
		{"/a/clip.mp4", stream.Metadata{CodecTag: "aprh"}, false},
	}
	for _, tc := range cases {
		tc.md.Width, tc.md.Height = 1920, 1080
		if got := classify.Classify(tc.path, tc.md).RAW; got != tc.want {
			t.Fatalf("%s %+v: RAW=%v, want %v", tc.path, tc.md, got, tc.want)
		}
	}
	custom := classify.ClassifyWithOptions("/a/clip.braw", stream.Metadata{Width: 1, Height: 1}, classify.Options{RAWExtensions: []string{".braw"}})
	if !custom.RAW {
		t.Fatal("expected custom RAW extension to be honoured")
	}
}

func TestColorDisplayShowsRAW(t *testing.T) {
	cases := []struct {
		path string
		md   stream.Metadata
		want string
	}{
		{"/a/clip.R3D", stream.Metadata{Width: 4096, Height: 2160, ColorTransfer: "bt709"}, "RAW video, SDR"},
		{"/a/clip.R3D", stream.Metadata{Width: 4096, Height: 2160, ColorTransfer: "smpte2084", DolbyVision: true}, "Dolby Vision RAW video, HDR10"},
		{"/a/clip.mp4", stream.Metadata{Width: 1920, Height: 1080, ColorTransfer: "bt709"}, "SDR"},
	}
	for _, tc := range cases {
		f := classify.Classify(tc.path, tc.md)
		if got := f.ColorDisplay(); got != tc.want {
			t.Fatalf("%s: ColorDisplay = %q, want %q", tc.path, got, tc.want)
		}
		plain := tc.md
		if f.Color.Tier != classify.Classify("/a/plain.mp4", plain).Color.Tier {
			t.Fatalf("%s: RAW changed the colour tier to %s", tc.path, f.Color.Tier)
		}
	}
}

func TestRowSeverity(t *testing.T) {
	cases := []struct {
		in   []classify.Severity
		want classify.Severity
	}{
		{[]classify.Severity{classify.SeverityGood, classify.SeverityInfo, classify.SeverityWarn}, classify.SeverityWarn},
		{[]classify.Severity{classify.SeverityGood, classify.SeverityInfo, classify.SeverityNeutral}, classify.SeverityInfo},
		{[]classify.Severity{classify.SeverityGood, classify.SeverityNeutral, classify.SeverityGood}, classify.SeverityGood},
		{[]classify.Severity{classify.SeverityNeutral}, classify.SeverityGood},
	}
	for _, tc := range cases {
		if got := classify.RowSeverity(tc.in...); got != tc.want {
			t.Fatalf("RowSeverity(%v) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
