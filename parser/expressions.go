package parser

import (
	"github.com/oxparse-dev/oxparse/ast"
	"github.com/oxparse-dev/oxparse/lexer"
	"github.com/oxparse-dev/oxparse/source"
)

// Binary operator precedence levels, loosest first. Multiplicative binds
// tightest; assignment binds loosest and associates to the right;
// comparison does not associate at all.
const (
	precAssign = iota + 1
	precRange
	precLazyOr
	precLazyAnd
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdditive
	precMultiplicative
)

type binaryOpInfo struct {
	op         ast.BinaryOp
	prec       int
	rightAssoc bool
}

var binaryOps = map[lexer.TokenType]binaryOpInfo{
	lexer.Asterisk:            {ast.OpMul, precMultiplicative, false},
	lexer.Slash:               {ast.OpDiv, precMultiplicative, false},
	lexer.Percent:             {ast.OpMod, precMultiplicative, false},
	lexer.Plus:                {ast.OpAdd, precAdditive, false},
	lexer.Minus:               {ast.OpSub, precAdditive, false},
	lexer.DoubleLessThan:      {ast.OpShl, precShift, false},
	lexer.DoubleGreaterThan:   {ast.OpShr, precShift, false},
	lexer.Ampersand:           {ast.OpBitAnd, precBitAnd, false},
	lexer.Caret:               {ast.OpBitXor, precBitXor, false},
	lexer.Pipe:                {ast.OpBitOr, precBitOr, false},
	lexer.LessThan:            {ast.OpLess, precCompare, false},
	lexer.LessThanOrEquals:    {ast.OpLessEqual, precCompare, false},
	lexer.GreaterThan:         {ast.OpGreater, precCompare, false},
	lexer.GreaterThanOrEquals: {ast.OpGreaterEqual, precCompare, false},
	lexer.DoubleEquals:        {ast.OpEqual, precCompare, false},
	lexer.NotEquals:           {ast.OpNotEqual, precCompare, false},
	lexer.DoubleAmpersand:     {ast.OpAnd, precLazyAnd, false},
	lexer.DoublePipe:          {ast.OpOr, precLazyOr, false},
	lexer.Equals:              {ast.OpAssign, precAssign, true},
	lexer.PlusEquals:          {ast.OpAddAssign, precAssign, true},
	lexer.MinusEquals:         {ast.OpSubAssign, precAssign, true},
	lexer.AsteriskEquals:      {ast.OpMulAssign, precAssign, true},
	lexer.SlashEquals:         {ast.OpDivAssign, precAssign, true},
	lexer.PercentEquals:       {ast.OpModAssign, precAssign, true},
	lexer.ShiftLeftEquals:     {ast.OpShlAssign, precAssign, true},
	lexer.ShiftRightEquals:    {ast.OpShrAssign, precAssign, true},
	lexer.AmpersandEquals:     {ast.OpBitAndAssign, precAssign, true},
	lexer.CaretEquals:         {ast.OpBitXorAssign, precAssign, true},
	lexer.PipeEquals:          {ast.OpBitOrAssign, precAssign, true},
}

// asExpr adapts a concrete expression rule to the Expression interface.
func asExpr[T ast.Expression](r rule[T]) rule[ast.Expression] {
	return func(pt point) (ast.Expression, point, bool) {
		v, npt, ok := r(pt)
		if !ok {
			return nil, pt, false
		}
		return v, npt, true
	}
}

// expression parses a full expression.
func (p *parser) expression(pt point) (ast.Expression, point, bool) {
	p.trace("expression", pt)
	e, npt, ok := p.expressionPrec(pt, 0)
	if !ok {
		p.fail(pt, ExpectedExpression)
		return nil, pt, false
	}
	return e, npt, true
}

// expressionPrec parses a head expression followed by binary operator tails
// of at least minPrec, folding left-associatively.
func (p *parser) expressionPrec(pt point, minPrec int) (ast.Expression, point, bool) {
	lhs, pt, ok := p.expressionHead(pt)
	if !ok {
		return nil, pt, false
	}
	return p.binaryTail(lhs, pt, minPrec)
}

func (p *parser) binaryTail(lhs ast.Expression, pt point, minPrec int) (ast.Expression, point, bool) {
	for {
		tok := p.at(pt)

		// Range operators: the right side is optional and ranges do not
		// chain.
		if tok.Type == lexer.DoublePeriod || tok.Type == lexer.DoublePeriodEquals || tok.Type == lexer.TriplePeriod {
			if precRange < minPrec {
				return lhs, pt, true
			}
			_, npt, _ := p.expect(pt, tok.Type)
			end, _, npt := optional(npt, func(pt point) (ast.Expression, point, bool) {
				return p.expressionPrec(pt, precRange+1)
			})
			extent := source.NewExtent(lhs.Span().Start, p.spanFrom(pt, npt).End)
			if tok.Type == lexer.DoublePeriod {
				lhs = &ast.ExprRange{Extent: extent, Start: lhs, End: end}
			} else {
				lhs = &ast.ExprRangeInclusive{Extent: extent, Start: lhs, End: end}
			}
			return lhs, npt, true
		}

		info, isOp := binaryOps[tok.Type]
		if !isOp || info.prec < minPrec {
			return lhs, pt, true
		}

		_, npt, ok := p.expect(pt, tok.Type)
		if !ok {
			return lhs, pt, true
		}
		nextMin := info.prec + 1
		if info.rightAssoc {
			nextMin = info.prec
		}
		rhs, npt, ok := p.expressionPrec(npt, nextMin)
		if !ok {
			return nil, pt, false
		}
		lhs = &ast.ExprBinary{
			Extent: source.NewExtent(lhs.Span().Start, rhs.Span().End),
			Op:     info.op,
			Lhs:    lhs,
			Rhs:    rhs,
		}
		pt = npt

		// Comparison is non-associative: a < b < c does not fold further.
		if info.prec == precCompare {
			if next, ok := binaryOps[p.at(pt).Type]; ok && next.prec == precCompare {
				return lhs, pt, true
			}
		}
	}
}

// expressionHead parses a prefix atom followed by the postfix tail loop:
// field access, method call, call, index, slice, try, as-cast, ascription.
func (p *parser) expressionHead(pt point) (ast.Expression, point, bool) {
	atom, pt, ok := p.expressionAtom(pt)
	if !ok {
		return nil, pt, false
	}
	return p.expressionTails(atom, pt)
}

func (p *parser) expressionTails(target ast.Expression, pt point) (ast.Expression, point, bool) {
	for {
		switch p.at(pt).Type {
		case lexer.Period:
			next, npt, ok := p.fieldAccessTail(target, pt)
			if !ok {
				return nil, pt, false
			}
			target, pt = next, npt

		case lexer.LeftParen:
			args, npt, ok := p.callArguments(pt)
			if !ok {
				return nil, pt, false
			}
			target = &ast.ExprCall{
				Extent: source.NewExtent(target.Span().Start, p.spanFrom(pt, npt).End),
				Target: target,
				Args:   args,
			}
			pt = npt

		case lexer.LeftSquare:
			next, npt, ok := p.indexTail(target, pt)
			if !ok {
				return nil, pt, false
			}
			target, pt = next, npt

		case lexer.Question:
			_, npt, _ := p.expect(pt, lexer.Question)
			target = &ast.ExprTry{
				Extent: source.NewExtent(target.Span().Start, p.spanFrom(pt, npt).End),
				Value:  target,
			}
			pt = npt

		case lexer.As:
			_, npt, _ := p.expect(pt, lexer.As)
			t, npt, ok := p.typ(npt)
			if !ok {
				return nil, pt, false
			}
			target = &ast.ExprAsType{
				Extent: source.NewExtent(target.Span().Start, t.Extent.End),
				Value:  target,
				Type:   t,
			}
			pt = npt

		case lexer.Colon:
			_, npt, _ := p.expect(pt, lexer.Colon)
			t, npt, ok := p.typ(npt)
			if !ok {
				return nil, pt, false
			}
			target = &ast.ExprAscription{
				Extent: source.NewExtent(target.Span().Start, t.Extent.End),
				Value:  target,
				Type:   t,
			}
			pt = npt

		default:
			return target, pt, true
		}
	}
}

// fieldAccessTail parses .name, .0, and .name::<T> after a target.
func (p *parser) fieldAccessTail(target ast.Expression, pt point) (ast.Expression, point, bool) {
	_, npt, _ := p.expect(pt, lexer.Period)

	switch tok := p.at(npt); tok.Type {
	case lexer.Number:
		npt = point{idx: npt.idx + 1}
		return &ast.ExprFieldAccess{
			Extent: source.NewExtent(target.Span().Start, tok.Extent.End),
			Target: target,
			Field:  ast.FieldName{Extent: tok.Extent, Number: true},
		}, npt, true

	case lexer.Ident:
		npt = point{idx: npt.idx + 1}
		field := ast.FieldName{Extent: tok.Extent}

		var tf *ast.Turbofish
		if _, tpt, ok := p.expect(npt, lexer.DoubleColon); ok {
			if t, tpt, ok := p.turbofish(tpt); ok {
				tf = &t
				npt = tpt
			}
		}
		end := tok.Extent.End
		if tf != nil {
			end = tf.Extent.End
		}
		return &ast.ExprFieldAccess{
			Extent:    source.NewExtent(target.Span().Start, end),
			Target:    target,
			Field:     field,
			Turbofish: tf,
		}, npt, true
	}

	p.fail(npt, ExpectedIdent)
	p.fail(npt, ExpectedNumber)
	return nil, pt, false
}

// callArguments parses a parenthesized comma-tailed argument list.
func (p *parser) callArguments(pt point) ([]ast.Expression, point, bool) {
	_, npt, ok := p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, pt, false
	}
	return grouped(p, func() ([]ast.Expression, point, bool) {
		args, npt := zeroOrMoreTailedValues(p, npt, lexer.Comma, p.expression)
		_, npt, ok := p.expect(npt, lexer.RightParen)
		if !ok {
			return nil, pt, false
		}
		return args.Values, npt, true
	})
}

// indexTail parses [expr] after a target, producing a slice when the index
// is range-shaped.
func (p *parser) indexTail(target ast.Expression, pt point) (ast.Expression, point, bool) {
	_, npt, _ := p.expect(pt, lexer.LeftSquare)
	index, npt, ok := grouped(p, func() (ast.Expression, point, bool) {
		return p.expression(npt)
	})
	if !ok {
		return nil, pt, false
	}
	_, npt, ok = p.expect(npt, lexer.RightSquare)
	if !ok {
		return nil, pt, false
	}

	extent := source.NewExtent(target.Span().Start, p.spanFrom(pt, npt).End)
	switch index.(type) {
	case *ast.ExprRange, *ast.ExprRangeInclusive:
		return &ast.ExprSlice{Extent: extent, Target: target, Range: index}, npt, true
	}
	return &ast.ExprIndex{Extent: extent, Target: target, Index: index}, npt, true
}

// expressionAtom parses the prefix forms and primaries.
func (p *parser) expressionAtom(pt point) (ast.Expression, point, bool) {
	switch p.at(pt).Type {
	case lexer.Number, lexer.Character, lexer.String, lexer.StringRaw,
		lexer.Byte, lexer.ByteString, lexer.ByteStringRaw:
		return p.exprLiteral(pt)
	case lexer.Minus:
		return p.exprUnary(pt, lexer.Minus, ast.OpNegate)
	case lexer.Bang:
		return p.exprUnary(pt, lexer.Bang, ast.OpNot)
	case lexer.Asterisk:
		return p.exprDereference(pt)
	case lexer.Ampersand, lexer.DoubleAmpersand:
		return p.exprReference(pt)
	case lexer.Box:
		return p.exprBox(pt)
	case lexer.Let:
		return p.exprLet(pt)
	case lexer.If:
		return p.exprIf(pt)
	case lexer.While, lexer.For, lexer.Loop:
		return p.exprLoopish(pt, nil)
	case lexer.Lifetime:
		return p.exprLabeled(pt)
	case lexer.Match:
		return p.exprMatch(pt)
	case lexer.Unsafe:
		return p.exprUnsafeBlock(pt)
	case lexer.LeftCurly:
		return p.exprBlock(pt)
	case lexer.Move, lexer.Pipe, lexer.DoublePipe:
		return p.exprClosure(pt)
	case lexer.Return:
		return p.exprReturn(pt)
	case lexer.Break:
		return p.exprBreak(pt)
	case lexer.Continue:
		return p.exprContinue(pt)
	case lexer.LeftParen:
		return p.exprParenOrTuple(pt)
	case lexer.LeftSquare:
		return p.exprArray(pt)
	case lexer.DoublePeriod, lexer.DoublePeriodEquals, lexer.TriplePeriod:
		return p.exprPrefixRange(pt)
	}

	return alternate[ast.Expression](pt,
		p.exprBool,
		asExpr(p.exprMacroCall),
		p.exprStructLiteral,
		asExpr(p.exprValue),
	)
}

func (p *parser) exprLiteral(pt point) (ast.Expression, point, bool) {
	tok := p.at(pt)
	npt := point{idx: pt.idx + 1}
	switch tok.Type {
	case lexer.Number:
		return &ast.ExprNumber{Extent: tok.Extent, Parts: *tok.Number}, npt, true
	case lexer.Character:
		return &ast.ExprCharacter{Extent: tok.Extent}, npt, true
	case lexer.String:
		return &ast.ExprString{Extent: tok.Extent}, npt, true
	case lexer.StringRaw:
		return &ast.ExprString{Extent: tok.Extent, Raw: true}, npt, true
	case lexer.Byte:
		return &ast.ExprByte{Extent: tok.Extent}, npt, true
	case lexer.ByteString:
		return &ast.ExprByteString{Extent: tok.Extent}, npt, true
	case lexer.ByteStringRaw:
		return &ast.ExprByteString{Extent: tok.Extent, Raw: true}, npt, true
	}
	p.fail(pt, ExpectedExpression)
	return nil, pt, false
}

func (p *parser) exprBool(pt point) (ast.Expression, point, bool) {
	tok := p.at(pt)
	if tok.Type == lexer.Ident {
		switch tok.Text(p.input) {
		case "true":
			return &ast.ExprBool{Extent: tok.Extent, Value: true}, point{idx: pt.idx + 1}, true
		case "false":
			return &ast.ExprBool{Extent: tok.Extent, Value: false}, point{idx: pt.idx + 1}, true
		}
	}
	return nil, pt, false
}

// exprUnary parses a prefix operator applied to a head expression, so -a.b
// negates the field access.
func (p *parser) exprUnary(pt point, tok lexer.TokenType, op ast.UnaryOp) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, tok)
	if !ok {
		return nil, spt, false
	}
	value, pt, ok := p.expressionHead(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprUnary{
		Extent: p.spanFrom(spt, pt),
		Op:     op,
		Value:  value,
	}, pt, true
}

func (p *parser) exprDereference(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Asterisk)
	if !ok {
		return nil, spt, false
	}
	value, pt, ok := p.expressionHead(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprDereference{Extent: p.spanFrom(spt, pt), Value: value}, pt, true
}

// exprReference parses &[mut] expr. The && token splits, so &&x nests two
// references.
func (p *parser) exprReference(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Ampersand)
	if !ok {
		return nil, spt, false
	}
	_, mutable, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Mut)
	})
	value, pt, ok := p.expressionHead(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprReference{
		Extent:  p.spanFrom(spt, pt),
		Mutable: mutable,
		Value:   value,
	}, pt, true
}

func (p *parser) exprBox(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Box)
	if !ok {
		return nil, spt, false
	}
	value, pt, ok := p.expression(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprBox{Extent: p.spanFrom(spt, pt), Value: value}, pt, true
}

// exprLet parses let pattern [: Type] [= value].
func (p *parser) exprLet(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Let)
	if !ok {
		return nil, spt, false
	}
	pat, pt, ok := p.pattern(pt)
	if !ok {
		return nil, spt, false
	}

	var typ *ast.Type
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		t, npt, ok := p.typ(npt)
		if !ok {
			return nil, spt, false
		}
		typ = &t
		pt = npt
	}

	var value ast.Expression
	if _, npt, ok := p.expect(pt, lexer.Equals); ok {
		v, npt, ok := p.expression(npt)
		if !ok {
			return nil, spt, false
		}
		value = v
		pt = npt
	}

	return &ast.ExprLet{
		Extent:  p.spanFrom(spt, pt),
		Pattern: pat,
		Type:    typ,
		Value:   value,
	}, pt, true
}

// exprIf parses if and if let, including the else chain.
func (p *parser) exprIf(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.If)
	if !ok {
		return nil, spt, false
	}

	if p.peekIs(pt, lexer.Let) {
		return p.exprIfLetTail(spt, pt)
	}

	cond, pt, ok := conditionCtx(p, func() (ast.Expression, point, bool) {
		return p.expression(pt)
	})
	if !ok {
		return nil, spt, false
	}
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, spt, false
	}
	els, pt, ok := p.elseTail(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprIf{
		Extent:    p.spanFrom(spt, pt),
		Condition: cond,
		Body:      body,
		Else:      els,
	}, pt, true
}

func (p *parser) exprIfLetTail(spt, pt point) (ast.Expression, point, bool) {
	_, pt, ok := p.expect(pt, lexer.Let)
	if !ok {
		return nil, spt, false
	}
	pat, pt, ok := p.pattern(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, spt, false
	}
	value, pt, ok := conditionCtx(p, func() (ast.Expression, point, bool) {
		return p.expression(pt)
	})
	if !ok {
		return nil, spt, false
	}
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, spt, false
	}
	els, pt, ok := p.elseTail(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprIfLet{
		Extent:  p.spanFrom(spt, pt),
		Pattern: pat,
		Value:   value,
		Body:    body,
		Else:    els,
	}, pt, true
}

// elseTail parses an optional else { } or else if chain; nil when absent.
func (p *parser) elseTail(pt point) (ast.Expression, point, bool) {
	_, npt, ok := p.expect(pt, lexer.Else)
	if !ok {
		return nil, pt, true
	}

	if p.peekIs(npt, lexer.If) {
		return p.exprIf(npt)
	}
	return asExpr(p.exprBlock)(npt)
}

// exprLabeled parses 'label: loop/while/for.
func (p *parser) exprLabeled(pt point) (ast.Expression, point, bool) {
	spt := pt
	label, pt, ok := p.lifetime(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.Colon)
	if !ok {
		return nil, spt, false
	}
	e, pt, ok := p.exprLoopish(pt, &label)
	if !ok {
		return nil, spt, false
	}
	return e, pt, ok
}

// exprLoopish parses while, while let, for, and loop, attaching an optional
// label.
func (p *parser) exprLoopish(pt point, label *ast.Lifetime) (ast.Expression, point, bool) {
	start := pt

	// A labeled loop's extent begins at the label.
	extentStart := p.tokens[start.idx].Extent.Start + start.sub
	if label != nil {
		extentStart = label.Extent.Start
	}

	switch p.at(pt).Type {
	case lexer.Loop:
		_, pt, _ := p.expect(pt, lexer.Loop)
		body, pt, ok := p.block(pt)
		if !ok {
			return nil, start, false
		}
		return &ast.ExprLoop{
			Extent: source.NewExtent(extentStart, body.Extent.End),
			Label:  label,
			Body:   body,
		}, pt, true

	case lexer.While:
		_, pt, _ := p.expect(pt, lexer.While)
		if p.peekIs(pt, lexer.Let) {
			return p.exprWhileLetTail(extentStart, label, pt)
		}
		cond, pt, ok := conditionCtx(p, func() (ast.Expression, point, bool) {
			return p.expression(pt)
		})
		if !ok {
			return nil, start, false
		}
		body, pt, ok := p.block(pt)
		if !ok {
			return nil, start, false
		}
		return &ast.ExprWhile{
			Extent:    source.NewExtent(extentStart, body.Extent.End),
			Label:     label,
			Condition: cond,
			Body:      body,
		}, pt, true

	case lexer.For:
		_, pt, _ := p.expect(pt, lexer.For)
		pat, pt, ok := p.pattern(pt)
		if !ok {
			return nil, start, false
		}
		_, pt, ok = p.expect(pt, lexer.In)
		if !ok {
			return nil, start, false
		}
		iter, pt, ok := conditionCtx(p, func() (ast.Expression, point, bool) {
			return p.expression(pt)
		})
		if !ok {
			return nil, start, false
		}
		body, pt, ok := p.block(pt)
		if !ok {
			return nil, start, false
		}
		return &ast.ExprFor{
			Extent:  source.NewExtent(extentStart, body.Extent.End),
			Label:   label,
			Pattern: pat,
			Iter:    iter,
			Body:    body,
		}, pt, true
	}

	p.fail(pt, ExpectedToken(lexer.Loop))
	p.fail(pt, ExpectedToken(lexer.While))
	p.fail(pt, ExpectedToken(lexer.For))
	return nil, start, false
}

func (p *parser) exprWhileLetTail(extentStart int, label *ast.Lifetime, pt point) (ast.Expression, point, bool) {
	start := pt
	_, pt, ok := p.expect(pt, lexer.Let)
	if !ok {
		return nil, start, false
	}
	pat, pt, ok := p.pattern(pt)
	if !ok {
		return nil, start, false
	}
	_, pt, ok = p.expect(pt, lexer.Equals)
	if !ok {
		return nil, start, false
	}
	value, pt, ok := conditionCtx(p, func() (ast.Expression, point, bool) {
		return p.expression(pt)
	})
	if !ok {
		return nil, start, false
	}
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, start, false
	}
	return &ast.ExprWhileLet{
		Extent:  source.NewExtent(extentStart, body.Extent.End),
		Label:   label,
		Pattern: pat,
		Value:   value,
		Body:    body,
	}, pt, true
}

// exprMatch parses match head { arms }.
func (p *parser) exprMatch(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Match)
	if !ok {
		return nil, spt, false
	}
	head, pt, ok := conditionCtx(p, func() (ast.Expression, point, bool) {
		return p.expression(pt)
	})
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}

	arms, pt, ok := grouped(p, func() ([]ast.MatchArm, point, bool) {
		arms, npt := zeroOrMore(pt, p.matchArm)
		return arms, npt, true
	})
	if !ok {
		return nil, spt, false
	}

	_, pt, ok = p.expect(pt, lexer.RightCurly)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprMatch{
		Extent: p.spanFrom(spt, pt),
		Head:   head,
		Arms:   arms,
	}, pt, true
}

// matchArm parses [attrs] |? patterns [if guard] => body ,?.
func (p *parser) matchArm(pt point) (ast.MatchArm, point, bool) {
	spt := pt
	attrs, pt := zeroOrMore(pt, p.attribute)

	// A leading | before the first pattern is allowed.
	_, _, pt = optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Pipe)
	})

	patterns, pt, ok := oneOrMoreTailedValues(p, pt, lexer.Pipe, p.pattern)
	if !ok {
		return ast.MatchArm{}, spt, false
	}

	var guard ast.Expression
	if _, npt, ok := p.expect(pt, lexer.If); ok {
		g, npt, ok := p.expression(npt)
		if !ok {
			return ast.MatchArm{}, spt, false
		}
		guard = g
		pt = npt
	}

	_, pt, ok = p.expect(pt, lexer.ThickArrow)
	if !ok {
		return ast.MatchArm{}, spt, false
	}
	body, pt, ok := p.expression(pt)
	if !ok {
		return ast.MatchArm{}, spt, false
	}

	_, _, pt = optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Comma)
	})

	return ast.MatchArm{
		Extent:     p.spanFrom(spt, pt),
		Attributes: attrs,
		Patterns:   patterns.Values,
		Guard:      guard,
		Body:       body,
	}, pt, true
}

func (p *parser) exprUnsafeBlock(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Unsafe)
	if !ok {
		return nil, spt, false
	}
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprUnsafeBlock{Extent: p.spanFrom(spt, pt), Body: body}, pt, true
}

func (p *parser) exprBlock(pt point) (*ast.ExprBlock, point, bool) {
	spt := pt
	body, pt, ok := p.block(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprBlock{Extent: body.Extent, Block: body}, pt, true
}

// exprClosure parses [move] |params| [-> Type] body. A || token is split
// into the two pipes of an empty parameter list.
func (p *parser) exprClosure(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, move, pt := optional(pt, func(pt point) (lexer.Token, point, bool) {
		return p.expect(pt, lexer.Move)
	})

	_, pt, ok := p.expect(pt, lexer.Pipe)
	if !ok {
		return nil, spt, false
	}
	params, pt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.closureParam)
	_, pt, ok = p.expect(pt, lexer.Pipe)
	if !ok {
		return nil, spt, false
	}

	var ret *ast.Type
	if _, npt, ok := p.expect(pt, lexer.ThinArrow); ok {
		t, npt, ok := p.typ(npt)
		if !ok {
			return nil, spt, false
		}
		ret = &t
		pt = npt
	}

	body, pt, ok := p.expression(pt)
	if !ok {
		return nil, spt, false
	}

	return &ast.ExprClosure{
		Extent: p.spanFrom(spt, pt),
		Move:   move,
		Params: params.Values,
		Return: ret,
		Body:   body,
	}, pt, true
}

func (p *parser) closureParam(pt point) (ast.ClosureParam, point, bool) {
	spt := pt
	pat, pt, ok := p.pattern(pt)
	if !ok {
		return ast.ClosureParam{}, spt, false
	}

	var typ *ast.Type
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		t, npt, ok := p.typ(npt)
		if !ok {
			return ast.ClosureParam{}, spt, false
		}
		typ = &t
		pt = npt
	}

	return ast.ClosureParam{
		Extent:  p.spanFrom(spt, pt),
		Pattern: pat,
		Type:    typ,
	}, pt, true
}

func (p *parser) exprReturn(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Return)
	if !ok {
		return nil, spt, false
	}
	value, _, pt := optional(pt, p.expression)
	return &ast.ExprReturn{Extent: p.spanFrom(spt, pt), Value: value}, pt, true
}

func (p *parser) exprBreak(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Break)
	if !ok {
		return nil, spt, false
	}
	label, pt := optionalPtr(pt, p.lifetime)
	return &ast.ExprBreak{Extent: p.spanFrom(spt, pt), Label: label}, pt, true
}

func (p *parser) exprContinue(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.Continue)
	if !ok {
		return nil, spt, false
	}
	label, pt := optionalPtr(pt, p.lifetime)
	return &ast.ExprContinue{Extent: p.spanFrom(spt, pt), Label: label}, pt, true
}

// exprParenOrTuple parses (a), (a,), and (a, b): one value without a
// trailing comma is a parenthetical, anything else is a tuple.
func (p *parser) exprParenOrTuple(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftParen)
	if !ok {
		return nil, spt, false
	}

	values, pt, ok := grouped(p, func() (tailed[ast.Expression], point, bool) {
		t, npt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.expression)
		return t, npt, true
	})
	if !ok {
		return nil, spt, false
	}

	_, pt, ok = p.expect(pt, lexer.RightParen)
	if !ok {
		return nil, spt, false
	}

	extent := p.spanFrom(spt, pt)
	if len(values.Values) == 1 && !values.LastHadSeparator {
		return &ast.ExprParenthetical{Extent: extent, Value: values.Values[0]}, pt, true
	}
	return &ast.ExprTuple{Extent: extent, Members: values.Values}, pt, true
}

// exprArray parses [a, b] and [v; count].
func (p *parser) exprArray(pt point) (ast.Expression, point, bool) {
	spt := pt
	_, pt, ok := p.expect(pt, lexer.LeftSquare)
	if !ok {
		return nil, spt, false
	}

	return grouped(p, func() (ast.Expression, point, bool) {
		if _, npt, ok := p.expect(pt, lexer.RightSquare); ok {
			return &ast.ExprArrayExplicit{Extent: p.spanFrom(spt, npt)}, npt, true
		}

		first, npt, ok := p.expression(pt)
		if !ok {
			return nil, spt, false
		}

		if _, rpt, ok := p.expect(npt, lexer.Semicolon); ok {
			count, rpt, ok := p.expression(rpt)
			if !ok {
				return nil, spt, false
			}
			_, rpt, ok = p.expect(rpt, lexer.RightSquare)
			if !ok {
				return nil, spt, false
			}
			return &ast.ExprArrayRepeated{
				Extent: p.spanFrom(spt, rpt),
				Value:  first,
				Count:  count,
			}, rpt, true
		}

		rest, npt := zeroOrMoreTailedValuesResume(p, npt, lexer.Comma, first, p.expression)
		_, npt, ok = p.expect(npt, lexer.RightSquare)
		if !ok {
			return nil, spt, false
		}
		return &ast.ExprArrayExplicit{
			Extent:  p.spanFrom(spt, npt),
			Members: rest.Values,
		}, npt, true
	})
}

// exprPrefixRange parses ..[expr] and ..=[expr] with no start.
func (p *parser) exprPrefixRange(pt point) (ast.Expression, point, bool) {
	spt := pt
	tok := p.at(pt)
	_, pt, ok := p.expect(pt, tok.Type)
	if !ok {
		return nil, spt, false
	}
	end, _, pt := optional(pt, func(pt point) (ast.Expression, point, bool) {
		return p.expressionPrec(pt, precRange+1)
	})

	extent := p.spanFrom(spt, pt)
	if tok.Type == lexer.DoublePeriod {
		return &ast.ExprRange{Extent: extent, End: end}, pt, true
	}
	return &ast.ExprRangeInclusive{Extent: extent, End: end}, pt, true
}

func (p *parser) exprMacroCall(pt point) (*ast.ExprMacroCall, point, bool) {
	spt := pt
	call, pt, ok := p.macroCall(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprMacroCall{Extent: call.Extent, Call: call}, pt, true
}

// exprStructLiteral parses Path { fields [, ..base] }. Disallowed in
// condition heads, where the brace opens the body block.
func (p *parser) exprStructLiteral(pt point) (ast.Expression, point, bool) {
	spt := pt
	if p.noStructLit {
		p.fail(pt, BlockNotAllowedHere)
		return nil, spt, false
	}

	path, pt, ok := p.path(pt)
	if !ok {
		return nil, spt, false
	}
	_, pt, ok = p.expect(pt, lexer.LeftCurly)
	if !ok {
		return nil, spt, false
	}

	return grouped(p, func() (ast.Expression, point, bool) {
		fields, npt := zeroOrMoreTailedValues(p, pt, lexer.Comma, p.structLiteralField)

		var spread ast.Expression
		if _, spt2, ok := p.expect(npt, lexer.DoublePeriod); ok {
			s, spt2, ok := p.expression(spt2)
			if !ok {
				return nil, spt, false
			}
			spread = s
			npt = spt2
		}

		_, npt, ok := p.expect(npt, lexer.RightCurly)
		if !ok {
			return nil, spt, false
		}
		return &ast.ExprStructLiteral{
			Extent: p.spanFrom(spt, npt),
			Path:   path,
			Fields: fields.Values,
			Spread: spread,
		}, npt, true
	})
}

func (p *parser) structLiteralField(pt point) (ast.StructLiteralField, point, bool) {
	spt := pt
	name, pt, ok := p.ident(pt)
	if !ok {
		return ast.StructLiteralField{}, spt, false
	}

	var value ast.Expression
	if _, npt, ok := p.expect(pt, lexer.Colon); ok {
		v, npt, ok := p.expression(npt)
		if !ok {
			return ast.StructLiteralField{}, spt, false
		}
		value = v
		pt = npt
	}

	return ast.StructLiteralField{
		Extent: p.spanFrom(spt, pt),
		Name:   name,
		Value:  value,
	}, pt, true
}

func (p *parser) exprValue(pt point) (*ast.ExprValue, point, bool) {
	spt := pt
	path, pt, ok := p.path(pt)
	if !ok {
		return nil, spt, false
	}
	return &ast.ExprValue{Extent: path.Extent, Path: path}, pt, true
}
