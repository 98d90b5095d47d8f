package expr

// KindOf returns the stable kind name of a node, used in diagnostics and
// unsupported-kind errors. The switch is exhaustive over the sealed set.
func KindOf(e Expression) string {
	switch e.(type) {
	case Name:
		return "Name"
	case Derivative:
		return "Derivative"
	case PartialDerivative:
		return "PartialDerivative"
	case InitialValue:
		return "InitialValue"
	case Number:
		return "Number"
	case PrefixPlus:
		return "PrefixPlus"
	case PrefixMinus:
		return "PrefixMinus"
	case Plus:
		return "Plus"
	case Minus:
		return "Minus"
	case Multiply:
		return "Multiply"
	case Divide:
		return "Divide"
	case Quotient:
		return "Quotient"
	case Remainder:
		return "Remainder"
	case Power:
		return "Power"
	case Sqrt:
		return "Sqrt"
	case Exp:
		return "Exp"
	case Log:
		return "Log"
	case Log10:
		return "Log10"
	case Sin:
		return "Sin"
	case Cos:
		return "Cos"
	case Tan:
		return "Tan"
	case ASin:
		return "ASin"
	case ACos:
		return "ACos"
	case ATan:
		return "ATan"
	case Floor:
		return "Floor"
	case Ceil:
		return "Ceil"
	case Abs:
		return "Abs"
	case Equal:
		return "Equal"
	case NotEqual:
		return "NotEqual"
	case More:
		return "More"
	case Less:
		return "Less"
	case MoreEqual:
		return "MoreEqual"
	case LessEqual:
		return "LessEqual"
	case Not:
		return "Not"
	case And:
		return "And"
	case Or:
		return "Or"
	case If:
		return "If"
	case Piecewise:
		return "Piecewise"
	default:
		return "Unknown"
	}
}
