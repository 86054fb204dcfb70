package calculator

// Operator is the closed set of operations the calculator understands.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Power
	Sqrt
)

// unresolved is returned alongside an InvalidOperator error. Its Name is
// "unknown", which keeps rejected requests on a fixed telemetry label.
const unresolved Operator = -1

// operators lists every Operator in declaration order. Keep it in sync
// with the constants above; TestOperatorTablesCoverEveryOperator fails otherwise.
var operators = []Operator{Add, Subtract, Multiply, Divide, Power, Sqrt}

var operatorTokens = map[Operator]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "*",
	Divide:   "/",
	Power:    "^",
	Sqrt:     "√",
}

var operatorNames = map[Operator]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Power:    "power",
	Sqrt:     "sqrt",
}

// ParseOperator maps a wire token such as "+" or "√" to an Operator.
func ParseOperator(token string) (Operator, error) {
	for _, op := range operators {
		if operatorTokens[op] == token {
			return op, nil
		}
	}
	return unresolved, newError(InvalidOperator, "unknown operator token %q", token)
}

// OperatorByName maps a route name such as "add" or "sqrt" to an Operator.
func OperatorByName(name string) (Operator, error) {
	for _, op := range operators {
		if operatorNames[op] == name {
			return op, nil
		}
	}
	return unresolved, newError(InvalidOperator, "unknown operation name %q", name)
}

// Token returns the wire token of op.
func (op Operator) Token() string {
	return operatorTokens[op]
}

// Name returns the route and metric name of op.
func (op Operator) Name() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return "unknown"
}

func (op Operator) String() string {
	return op.Name()
}

// IsUnary reports whether op ignores its second operand.
func (op Operator) IsUnary() bool {
	return op == Sqrt
}
