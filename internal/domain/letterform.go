package domain

// Letterform is one row of the alphabet reference table
type Letterform struct {
	Isolated     string `yaml:"isolated"`
	Initial      string `yaml:"initial"`
	Medial       string `yaml:"medial"`
	Final        string `yaml:"final"`
	Romanization string `yaml:"romanization"`
	Note         string `yaml:"note"`
}
