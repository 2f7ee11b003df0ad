package types

// Classification is the classifier's verdict for one string.
type Classification struct {
	Translatable bool       `json:"translatable"`
	Confidence   Confidence `json:"confidence"`
	Reason       string     `json:"reason"`
}

// Metadata carries the syntactic surroundings of a string into the classifier.
type Metadata struct {
	// Attribute is the enclosing markup attribute name, if any.
	Attribute string `json:"attribute,omitempty"`
	// Call is the flattened name of the nearest enclosing call or new expression
	// ("console.log", "document.querySelector", "RegExp").
	Call string `json:"call,omitempty"`
	// ParentKind is the syntax node kind of the literal's parent.
	ParentKind string `json:"parent_kind,omitempty"`
	// InThrow is set when the literal is the message of a thrown error.
	InThrow bool `json:"in_throw,omitempty"`
	// VariableName is the declared name when the parent is a variable initializer.
	VariableName string `json:"variable_name,omitempty"`
}

// Parent kinds the classifier interprets.
const (
	ParentVariableDeclarator = "variable_declarator"
)

// IsVariableInitializer reports whether the literal initializes a variable.
func (m Metadata) IsVariableInitializer() bool {
	return m.ParentKind == ParentVariableDeclarator
}
