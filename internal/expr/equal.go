package expr

// Same reports structural (by-value) equality of two expression trees.
// Identity is irrelevant: two independently built trees compare equal when
// every node kind and attribute matches. Name references compare by their
// Ref values; Number units participate in equality because a unit tag
// changes what unit-aware backends emit.
func Same(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case Name:
		y, ok := b.(Name)
		return ok && x.Ref == y.Ref
	case Derivative:
		y, ok := b.(Derivative)
		return ok && Same(x.Var, y.Var)
	case PartialDerivative:
		y, ok := b.(PartialDerivative)
		return ok && Same(x.Var, y.Var) && Same(x.Wrt, y.Wrt)
	case InitialValue:
		y, ok := b.(InitialValue)
		return ok && Same(x.Var, y.Var)
	case Number:
		y, ok := b.(Number)
		return ok && x.Value == y.Value && x.Units == y.Units
	case PrefixPlus:
		y, ok := b.(PrefixPlus)
		return ok && Same(x.Op, y.Op)
	case PrefixMinus:
		y, ok := b.(PrefixMinus)
		return ok && Same(x.Op, y.Op)
	case Plus:
		y, ok := b.(Plus)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Minus:
		y, ok := b.(Minus)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Multiply:
		y, ok := b.(Multiply)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Divide:
		y, ok := b.(Divide)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Quotient:
		y, ok := b.(Quotient)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Remainder:
		y, ok := b.(Remainder)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Power:
		y, ok := b.(Power)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Sqrt:
		y, ok := b.(Sqrt)
		return ok && Same(x.Op, y.Op)
	case Exp:
		y, ok := b.(Exp)
		return ok && Same(x.Op, y.Op)
	case Log:
		y, ok := b.(Log)
		if !ok || !Same(x.Op, y.Op) {
			return false
		}
		if x.Base == nil || y.Base == nil {
			return x.Base == nil && y.Base == nil
		}
		return Same(x.Base, y.Base)
	case Log10:
		y, ok := b.(Log10)
		return ok && Same(x.Op, y.Op)
	case Sin:
		y, ok := b.(Sin)
		return ok && Same(x.Op, y.Op)
	case Cos:
		y, ok := b.(Cos)
		return ok && Same(x.Op, y.Op)
	case Tan:
		y, ok := b.(Tan)
		return ok && Same(x.Op, y.Op)
	case ASin:
		y, ok := b.(ASin)
		return ok && Same(x.Op, y.Op)
	case ACos:
		y, ok := b.(ACos)
		return ok && Same(x.Op, y.Op)
	case ATan:
		y, ok := b.(ATan)
		return ok && Same(x.Op, y.Op)
	case Floor:
		y, ok := b.(Floor)
		return ok && Same(x.Op, y.Op)
	case Ceil:
		y, ok := b.(Ceil)
		return ok && Same(x.Op, y.Op)
	case Abs:
		y, ok := b.(Abs)
		return ok && Same(x.Op, y.Op)
	case Equal:
		y, ok := b.(Equal)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case NotEqual:
		y, ok := b.(NotEqual)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case More:
		y, ok := b.(More)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Less:
		y, ok := b.(Less)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case MoreEqual:
		y, ok := b.(MoreEqual)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case LessEqual:
		y, ok := b.(LessEqual)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Not:
		y, ok := b.(Not)
		return ok && Same(x.Op, y.Op)
	case And:
		y, ok := b.(And)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case Or:
		y, ok := b.(Or)
		return ok && Same(x.L, y.L) && Same(x.R, y.R)
	case If:
		y, ok := b.(If)
		return ok && Same(x.Cond, y.Cond) && Same(x.Then, y.Then) && Same(x.Else, y.Else)
	case Piecewise:
		y, ok := b.(Piecewise)
		if !ok || len(x.Pieces) != len(y.Pieces) {
			return false
		}
		for i := range x.Pieces {
			if !Same(x.Pieces[i].Cond, y.Pieces[i].Cond) {
				return false
			}
			if !Same(x.Pieces[i].Value, y.Pieces[i].Value) {
				return false
			}
		}
		return Same(x.Default, y.Default)
	default:
		return false
	}
}
