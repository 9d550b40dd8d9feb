package analyzer

import (
	"github.com/praetorian-inc/rulebridge/pkg/eslintbridge"
	"github.com/praetorian-inc/rulebridge/pkg/types"
)

// JavaScriptAnalyzer forwards JavaScript files to the eslint-bridge.
type JavaScriptAnalyzer struct {
	*bridgeAnalyzer
}

// NewJavaScriptAnalyzer creates a JavaScript analyzer backed by client.
func NewJavaScriptAnalyzer(client eslintbridge.Client, opts ...BridgeOption) *JavaScriptAnalyzer {
	return &JavaScriptAnalyzer{
		bridgeAnalyzer: newBridgeAnalyzer(types.LanguageJavascript, JavaScriptRepository, client.AnalyzeJS, opts),
	}
}
