package cache

// Keyer builds cache keys.
type Keyer interface {
	// ParseKey returns the key for parsing the crops with the given hash.
	ParseKey(cropsHash string, opts ParseKeyOpts) string
	// RecognizeKey returns the key for recognizing the image with the given
	// hash.
	RecognizeKey(imageHash string, opts RecognizeKeyOpts) string
}

// ParseKeyOpts holds the parse options that change the result.
type ParseKeyOpts struct {
	Simplify bool `json:"simplify"`
	Raw      bool `json:"raw"`
}

// RecognizeKeyOpts holds the recognition options that change the result.
type RecognizeKeyOpts struct {
	Classifier string `json:"classifier"`
	Threshold  int    `json:"threshold"`
	Merge      bool   `json:"merge"`
	Parse      ParseKeyOpts
}

// DefaultKeyer builds keys of the form kind:sha256(hash, options).
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ParseKey implements [Keyer].
func (DefaultKeyer) ParseKey(cropsHash string, opts ParseKeyOpts) string {
	return hashKey("parse", cropsHash, opts)
}

// RecognizeKey implements [Keyer].
func (DefaultKeyer) RecognizeKey(imageHash string, opts RecognizeKeyOpts) string {
	return hashKey("recognize", imageHash, opts)
}
