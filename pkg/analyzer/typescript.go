package analyzer

import (
	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// TypeScriptAnalyzer forwards TypeScript files to the eslint-bridge.
type TypeScriptAnalyzer struct {
	*bridgeAnalyzer
}

// NewTypeScriptAnalyzer creates a TypeScript analyzer backed by client.
func NewTypeScriptAnalyzer(client eslintbridge.Client, opts ...BridgeOption) *TypeScriptAnalyzer {
	return &TypeScriptAnalyzer{
		bridgeAnalyzer: newBridgeAnalyzer(types.LanguageTypeScript, TypeScriptRepository, client.AnalyzeTS, opts),
	}
}
