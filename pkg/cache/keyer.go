package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies the placement of a diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string
	// RouteKey identifies the routing result of a placed diagram.
	RouteKey(layoutHash string, opts RouteKeyOpts) string
	// ArtifactKey identifies a rendered output of a routing result.
	ArtifactKey(routesHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a placement.
type LayoutKeyOpts struct {
	AutoLayout bool `json:"auto_layout"`
}

// RouteKeyOpts are the options that change a routing result.
type RouteKeyOpts struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	VizType string  `json:"viz_type"`
	Format  string  `json:"format"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Step    int     `json:"step"`
}

// DefaultKeyer hashes stage inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return stageKey("layout", diagramHash, opts)
}

// RouteKey implements [Keyer].
func (DefaultKeyer) RouteKey(layoutHash string, opts RouteKeyOpts) string {
	return stageKey("routes", layoutHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(routesHash string, opts ArtifactKeyOpts) string {
	return stageKey("artifact", routesHash, opts)
}

// stageKey joins a stage name and the SHA-256 of its inputs. Inputs that
// cannot be encoded hash as null; every key opts type here encodes.
func stageKey(stage string, input string, opts any) string {
	data, _ := json.Marshal([]any{input, opts})
	return stage + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
