package parser

import (
	"github.com/henry-nazare/wildcat/ast"
	"github.com/henry-nazare/wildcat/charclass"
)

var (
	identifier Rule[string] = many(charclass.Ident)

	idNode Rule[ast.ID] = func(s State) (State, ast.ID) {
		s, id := identifier(s)
		return s, ast.ID(id)
	}

	// wordNode never accepts a lone ";" so that bodies stop in front of the
	// terminator.
	wordNode Rule[ast.Word] = func(s State) (State, ast.Word) {
		s, w := many(charclass.Word)(s)
		if s.valid && w == ";" {
			s = s.invalidate()
		}
		return s, ast.Word(w)
	}

	typeID Rule[ast.TypeID] = func(s State) (State, ast.TypeID) {
		s, id := identifier(s)
		return s, ast.TypeID(id)
	}

	typeCompound = Map(SepBySpace(typeID), func(ids []ast.TypeID) ast.TypeCompound {
		return ast.TypeCompound(ids)
	})

	typeList = Map(SepBy(',', typeCompound), func(cs []ast.TypeCompound) ast.TypeList {
		return ast.TypeList(cs)
	})

	typeFn Rule[ast.TypeFn] = func(s State) (State, ast.TypeFn) {
		var fn ast.TypeFn
		s = s.Then(lit('(')).Then(ws)
		s, fn.Inputs = Bind(s, typeList)
		s = s.Then(ws).Then(str("->")).Then(ws)
		s, fn.Output = Bind(s, Maybe(typeCompound))
		s = s.Then(ws).Then(lit(')'))
		return s, fn
	}

	argID = Map(idNode, func(id ast.ID) ast.ArgID {
		return ast.ArgID(id)
	})

	argCompound = Map(SepBySpace(argID), func(ids []ast.ArgID) ast.ArgCompound {
		return ast.ArgCompound(ids)
	})

	argList = Map(SepBy(',', argCompound), func(cs []ast.ArgCompound) ast.ArgList {
		return ast.ArgList(cs)
	})

	args Rule[ast.ArgList] = func(s State) (State, ast.ArgList) {
		s = s.Then(lit('(')).Then(ws)
		s, list := Bind(s, argList)
		s = s.Then(ws).Then(lit(')'))
		return s, list
	}

	body = Map(SepBySpace(wordNode), func(words []ast.Word) ast.Body {
		return ast.Body(words)
	})

	definition Rule[ast.Def] = func(s State) (State, ast.Def) {
		def := ast.Def{Pos: s.Location()}
		s, def.Name = Bind(s, wordNode)
		s = s.Then(spaces).Then(lit(':')).Then(spaces)
		s, def.Signature = Bind(s, typeFn)
		s, def.Args = Bind(s, Maybe(After(spaces, args)))
		s = s.Then(ws).Then(str("->"))
		s, def.Body = Bind(s, Maybe(After(ws, body)))
		s = s.Then(terminator)
		if !s.valid {
			return s, ast.Def{}
		}
		return s, def
	}

	// The head of a definition, used by recovery to spot where the next
	// definition starts.
	definitionHead = seq(spaces, Step(func(s State) State {
		s, _ = wordNode(s)
		return s
	}), spaces, lit(':'), spaces)

	// A terminator followed by whitespace or the end of input: a point where
	// parsing can resume.
	boundary = seq(spaces, lit(';'), either(spaces, seq(ws, eof)))
)

// terminator matches the " ;" that closes a definition. A missing
// terminator is not reported here: the errors collected so far are kept,
// minus anything located at or past the end of the definition, and recovery
// reports the definition as unterminated. That keeps one mistake to one
// diagnostic, placed at the definition rather than on the following line.
func terminator(s State) State {
	before := s.errs
	end := s.Location()
	next, ok := TryStep(s, seq(spaces, lit(';')))
	if ok {
		return next
	}
	next.errs = before.ClearFrom(end)
	return next.invalidate()
}
