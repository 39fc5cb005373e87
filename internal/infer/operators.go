package infer

import (
	"github.com/mbcrawfo/corelang-tyck/internal/ast"
	"github.com/mbcrawfo/corelang-tyck/internal/tcerrors"
	"github.com/mbcrawfo/corelang-tyck/internal/types"
)

// inferBinOp implements spec.md §4.4's "Operator typing (no ad-hoc
// overloading)" table: every operator has one fixed, type-directed rule,
// never a user-extensible overload set.
func (c *InferenceContext) inferBinOp(e *ast.BinOp, env *types.TypeEnv) (types.Type, error) {
	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpMod, ast.OpIntDiv, ast.OpFloatDiv:
		return c.inferArithmetic(e, env)
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return c.inferComparison(e, env)
	case ast.OpEq, ast.OpNe:
		return c.inferEquality(e, env)
	case ast.OpAnd, ast.OpOr:
		return c.inferLogical(e, env)
	case ast.OpRefAssign:
		return c.inferRefAssign(e, env)
	default:
		return nil, tcerrors.NewTypeMismatch(e.Position(), "", "", "unknown binary operator "+string(e.Op))
	}
}

func (c *InferenceContext) inferArithmetic(e *ast.BinOp, env *types.TypeEnv) (types.Type, error) {
	leftType, err := c.Infer(e.Left, env)
	if err != nil {
		return nil, err
	}
	rightType, err := c.Infer(e.Right, env)
	if err != nil {
		return nil, err
	}
	alpha := c.Fresh()
	if err := c.unify(e.Left.Position(), alpha, leftType, "arithmetic operand"); err != nil {
		return nil, err
	}
	if err := c.unify(e.Right.Position(), types.Apply(c.Subst, alpha), rightType, "arithmetic operand"); err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpIntDiv:
		if err := c.unify(e.Position(), types.Int, types.Apply(c.Subst, alpha), "integer division operand"); err != nil {
			return nil, err
		}
	case ast.OpFloatDiv:
		if err := c.unify(e.Position(), types.Float, types.Apply(c.Subst, alpha), "float division operand"); err != nil {
			return nil, err
		}
	}
	resolved := types.Apply(c.Subst, alpha)
	switch resolved {
	case types.Int, types.Float:
		return resolved, nil
	default:
		if _, isVar := resolved.(*types.Var); isVar {
			// Unconstrained by context: default to Int, the common case for
			// a literal-free arithmetic expression with no annotation.
			if err := c.unify(e.Position(), resolved, types.Int, "arithmetic operand"); err != nil {
				return nil, err
			}
			return types.Int, nil
		}
		return nil, tcerrors.NewArithmeticTypeMismatch(e.Position(), types.PrettyPrintType(resolved))
	}
}

func (c *InferenceContext) inferComparison(e *ast.BinOp, env *types.TypeEnv) (types.Type, error) {
	leftType, err := c.Infer(e.Left, env)
	if err != nil {
		return nil, err
	}
	rightType, err := c.Infer(e.Right, env)
	if err != nil {
		return nil, err
	}
	alpha := c.Fresh()
	if err := c.unify(e.Left.Position(), alpha, leftType, "comparison operand"); err != nil {
		return nil, err
	}
	if err := c.unify(e.Right.Position(), types.Apply(c.Subst, alpha), rightType, "comparison operand"); err != nil {
		return nil, err
	}
	resolved := types.Apply(c.Subst, alpha)
	switch resolved {
	case types.Int, types.Float, types.String:
		return types.Bool, nil
	default:
		if _, isVar := resolved.(*types.Var); isVar {
			return types.Bool, nil
		}
		return nil, tcerrors.NewArithmeticTypeMismatch(e.Position(), types.PrettyPrintType(resolved))
	}
}

func (c *InferenceContext) inferEquality(e *ast.BinOp, env *types.TypeEnv) (types.Type, error) {
	leftType, err := c.Infer(e.Left, env)
	if err != nil {
		return nil, err
	}
	rightType, err := c.Infer(e.Right, env)
	if err != nil {
		return nil, err
	}
	// Equality needs exact structural agreement, not width subtyping in
	// either direction: unifying only left~right would let a record with
	// extra fields stand in as the "actual" side, so unify the reverse pair
	// too (spec.md's "{x:1,y:2} == {x:1,y:2,z:3} must fail" scenario).
	if err := c.unify(e.Position(), leftType, rightType, "equality operands"); err != nil {
		return nil, err
	}
	if err := c.unify(e.Position(), types.Apply(c.Subst, rightType), types.Apply(c.Subst, leftType), "equality operands"); err != nil {
		return nil, err
	}
	return types.Bool, nil
}

func (c *InferenceContext) inferLogical(e *ast.BinOp, env *types.TypeEnv) (types.Type, error) {
	leftType, err := c.Infer(e.Left, env)
	if err != nil {
		return nil, err
	}
	if err := c.unify(e.Left.Position(), types.Bool, leftType, "logical operand"); err != nil {
		return nil, err
	}
	rightType, err := c.Infer(e.Right, env)
	if err != nil {
		return nil, err
	}
	if err := c.unify(e.Right.Position(), types.Bool, rightType, "logical operand"); err != nil {
		return nil, err
	}
	return types.Bool, nil
}

func (c *InferenceContext) inferRefAssign(e *ast.BinOp, env *types.TypeEnv) (types.Type, error) {
	leftType, err := c.Infer(e.Left, env)
	if err != nil {
		return nil, err
	}
	alpha := c.Fresh()
	if err := c.unify(e.Left.Position(), &types.Ref{Inner: alpha}, leftType, "ref assignment target"); err != nil {
		return nil, err
	}
	rightType, err := c.Infer(e.Right, env)
	if err != nil {
		return nil, err
	}
	if err := c.unify(e.Right.Position(), types.Apply(c.Subst, alpha), rightType, "ref assignment value"); err != nil {
		return nil, err
	}
	return types.Unit, nil
}

func (c *InferenceContext) inferUnOp(e *ast.UnOp, env *types.TypeEnv) (types.Type, error) {
	operandType, err := c.Infer(e.Operand, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case ast.OpNeg:
		alpha := c.Fresh()
		if err := c.unify(e.Position(), alpha, operandType, "unary negation"); err != nil {
			return nil, err
		}
		resolved := types.Apply(c.Subst, alpha)
		if resolved == types.Int || resolved == types.Float {
			return resolved, nil
		}
		if _, isVar := resolved.(*types.Var); isVar {
			if err := c.unify(e.Position(), resolved, types.Int, "unary negation"); err != nil {
				return nil, err
			}
			return types.Int, nil
		}
		return nil, tcerrors.NewArithmeticTypeMismatch(e.Position(), types.PrettyPrintType(resolved))

	case ast.OpNot:
		if err := c.unify(e.Position(), types.Bool, operandType, "logical not"); err != nil {
			return nil, err
		}
		return types.Bool, nil

	case ast.OpDeref:
		alpha := c.Fresh()
		if err := c.unify(e.Position(), &types.Ref{Inner: alpha}, operandType, "dereference"); err != nil {
			return nil, err
		}
		return types.Apply(c.Subst, alpha), nil

	default:
		return nil, tcerrors.NewTypeMismatch(e.Position(), "", "", "unknown unary operator "+string(e.Op))
	}
}
