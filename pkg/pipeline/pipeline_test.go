package pipeline

import (
	"testing"

	errs "github.com/matzehuels/deckroute/pkg/errors"
	"github.com/matzehuels/deckroute/pkg/route"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	err := ValidateFormats([]string{"svg", "invalid"})
	if err == nil {
		t.Fatal("Invalid format should fail")
	}
	if !errs.IsValidation(err) {
		t.Errorf("Invalid format should be a validation error, got %q", errs.GetCode(err))
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateVizType(t *testing.T) {
	tests := []struct {
		vizType string
		wantErr bool
	}{
		{"routes", false},
		{"nodelink", false},
		{"grid", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateVizType(tt.vizType)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVizType(%q) error = %v, wantErr %v", tt.vizType, err, tt.wantErr)
		}
	}
}

func TestValidateSourceFormat(t *testing.T) {
	for _, f := range []string{"toml", "json"} {
		if err := ValidateSourceFormat(f); err != nil {
			t.Errorf("ValidateSourceFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateSourceFormat("yaml"); err == nil {
		t.Error("yaml should be rejected")
	}
}

func TestOptionsValidateForParse(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForParse(); err == nil {
		t.Error("Missing source should fail")
	}

	opts = Options{Source: "[[component]]\nid = \"a\"\n"}
	if err := opts.ValidateForParse(); err != nil {
		t.Errorf("Valid options should pass: %v", err)
	}
	if opts.Format != DefaultFormat {
		t.Errorf("Format should default to %s, got %s", DefaultFormat, opts.Format)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
}

func TestOptionsValidateForRoute(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"negative width", Options{Width: -1}, true},
		{"negative lanes", Options{LanesVertical: Lanes(-2)}, true},
		{"zero lanes", Options{LanesHorizontal: Lanes(0)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRoute()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForRoute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsIsNodelink(t *testing.T) {
	opts := Options{}
	if opts.IsNodelink() {
		t.Error("Empty VizType should not be nodelink")
	}

	opts.VizType = "nodelink"
	if !opts.IsNodelink() {
		t.Error("nodelink VizType should be nodelink")
	}
}

func TestOptionsCapacity(t *testing.T) {
	b := route.Bounds{MinCol: 1, MaxCol: 3, MinRow: 1, MaxRow: 2}

	opts := Options{}
	opts.SetRouteDefaults()
	if got, want := opts.Capacity(b), route.CapacityFor(DefaultWidth, DefaultHeight, b); got != want {
		t.Errorf("derived capacity = %v, want %v", got, want)
	}

	opts.LanesHorizontal = Lanes(0)
	got := opts.Capacity(b)
	if got.Horizontal != 0 {
		t.Errorf("explicit horizontal lanes = %d, want 0", got.Horizontal)
	}
	if got.Vertical != route.CapacityFor(DefaultWidth, DefaultHeight, b).Vertical {
		t.Errorf("vertical lanes should still be derived, got %d", got.Vertical)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Source: "[[component]]\nid = \"a\"\n"}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalVizType := opts.VizType
	originalWidth := opts.Width

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.VizType != originalVizType {
		t.Error("VizType changed on second call")
	}
	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
}

func TestSetRouteDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRouteDefaults()

	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %f, got %f", DefaultWidth, opts.Width)
	}
	if opts.Height != DefaultHeight {
		t.Errorf("Height should be %f, got %f", DefaultHeight, opts.Height)
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.VizType != DefaultVizType {
		t.Errorf("VizType should be %s, got %s", DefaultVizType, opts.VizType)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{VizType: VizNodelink, Width: 100, Height: 50, Step: 2}
	k := opts.ArtifactKeyOpts(FormatSVG)
	if k.VizType != VizNodelink || k.Format != FormatSVG || k.Width != 100 || k.Height != 50 || k.Step != 2 {
		t.Errorf("ArtifactKeyOpts = %+v", k)
	}
}
