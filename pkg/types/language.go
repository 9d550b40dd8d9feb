package types

import (
	"path/filepath"
	"strings"
)

// AnalysisLanguage identifies a family of files an analyzer can handle.
type AnalysisLanguage string

const (
	LanguageJavascript   AnalysisLanguage = "javascript"
	LanguageTypeScript   AnalysisLanguage = "typescript"
	LanguageCFamily      AnalysisLanguage = "cfamily"
	LanguageRoslynFamily AnalysisLanguage = "roslyn"
)

var extensionLanguages = map[string]AnalysisLanguage{
	".js":  LanguageJavascript,
	".jsx": LanguageJavascript,
	".mjs": LanguageJavascript,
	".cjs": LanguageJavascript,
	".vue": LanguageJavascript,
	".ts":  LanguageTypeScript,
	".tsx": LanguageTypeScript,
	".c":   LanguageCFamily,
	".cc":  LanguageCFamily,
	".cpp": LanguageCFamily,
	".cxx": LanguageCFamily,
	".h":   LanguageCFamily,
	".hpp": LanguageCFamily,
	".cs":  LanguageRoslynFamily,
	".vb":  LanguageRoslynFamily,
}

// DetectLanguages returns the languages a file belongs to, based on its
// extension. Unknown extensions yield nil.
func DetectLanguages(path string) []AnalysisLanguage {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extensionLanguages[ext]; ok {
		return []AnalysisLanguage{lang}
	}
	return nil
}

// ContainsLanguage reports whether lang is in languages.
func ContainsLanguage(languages []AnalysisLanguage, lang AnalysisLanguage) bool {
	for _, l := range languages {
		if l == lang {
			return true
		}
	}
	return false
}
