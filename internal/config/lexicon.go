package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PhraseKeywords maps a job/persona phrase to the section-title terms it implies.
type PhraseKeywords struct {
	Phrase   string   `yaml:"phrase"`
	Keywords []string `yaml:"keywords"`
}

// Lexicon holds the static word tables used by keyword extraction, dietary
// filtering and scoring. It is passed into constructors so tests can swap it.
type Lexicon struct {
	JobKeywords        []PhraseKeywords `yaml:"job_keywords"`
	MeatWords          []string         `yaml:"meat_words"`
	AnimalProducts     []string         `yaml:"animal_products"`
	GlutenWords        []string         `yaml:"gluten_words"`
	BoilerplateTitles  []string         `yaml:"boilerplate_titles"`
	InstructionMarkers []string         `yaml:"instruction_markers"`
}

// DefaultLexicon returns the built-in tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		JobKeywords: []PhraseKeywords{
			{Phrase: "literature review", Keywords: []string{
				"methodology", "methods", "dataset", "data set", "benchmark", "performance", "experiment", "results",
				"discussion", "evaluation", "comparative", "study", "review",
			}},
			{Phrase: "drug discovery", Keywords: []string{
				"graph neural network", "gnn", "drug", "compound", "bioactivity",
			}},
			{Phrase: "business analysis", Keywords: []string{
				"revenue", "income", "financial", "r&d", "research and development", "market", "strategy",
				"position", "overview", "investments", "growth", "segment",
			}},
			{Phrase: "exam preparation", Keywords: []string{
				"key concept", "summary", "mechanism", "reaction", "practice", "important", "exam", "problem", "review",
				"study guide", "kinetics",
			}},
			{Phrase: "reaction kinetics", Keywords: []string{
				"mechanism", "rate", "law", "activation energy", "transition state", "arrhenius", "order", "reaction", "kinetics",
			}},
		},
		MeatWords: []string{
			"chicken", "beef", "pork", "lamb", "fish", "shrimp", "crab", "turkey", "duck", "seafood",
			"bacon", "ham", "anchovy", "anchovies", "sausage", "meat", "steak", "mutton", "octopus", "calamari", "goat", "veal",
		},
		AnimalProducts: []string{
			"egg", "cheese", "milk", "butter", "cream", "yogurt", "honey",
		},
		GlutenWords: []string{
			"wheat", "barley", "rye", "bread", "noodle", "pasta", "bun", "cake", "cracker", "biscuit", "flour",
			"couscous", "semolina", "spaghetti", "ravioli", "crouton",
		},
		BoilerplateTitles: []string{
			"introduction", "conclusion", "contents", "summary", "about the authors", "references", "table of contents",
		},
		InstructionMarkers: []string{
			"instruction", "method", "directions", "how to", "step",
		},
	}
}

// LoadLexicon reads a YAML lexicon from path. Tables missing from the file
// keep their built-in values.
func LoadLexicon(path string) (Lexicon, error) {
	lex := DefaultLexicon()
	if path == "" {
		return lex, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon: %w", err)
	}
	var file Lexicon
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	if file.JobKeywords != nil {
		lex.JobKeywords = file.JobKeywords
	}
	if file.MeatWords != nil {
		lex.MeatWords = file.MeatWords
	}
	if file.AnimalProducts != nil {
		lex.AnimalProducts = file.AnimalProducts
	}
	if file.GlutenWords != nil {
		lex.GlutenWords = file.GlutenWords
	}
	if file.BoilerplateTitles != nil {
		lex.BoilerplateTitles = file.BoilerplateTitles
	}
	if file.InstructionMarkers != nil {
		lex.InstructionMarkers = file.InstructionMarkers
	}
	return lex, nil
}
