// Package reader implements cheax's recursive-descent reader (spec
// 4.C): it drives a lexer.Lexer and builds value.Value ASTs directly,
// since cheax is homoiconic and has no separate syntax-tree type.
package reader

import (
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/lexer"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Reader wraps a lexer.Lexer with the grammar for forms.
type Reader struct {
	lex *lexer.Lexer
}

// New creates a Reader over src.
func New(src string) *Reader {
	return &Reader{lex: lexer.New(src)}
}

// Read returns the next top-level form. ok is false with a nil error
// when the input is exhausted cleanly (spec 4.C: "a read call returns
// the next top-level form, or nil to indicate end of input") — this is
// distinct from a successfully-read nil value (the empty list `()`),
// which Read reports as ok == true, v == nil.
func (r *Reader) Read() (v value.Value, ok bool, err error) {
	tok, err := r.lex.Peek()
	if err != nil {
		return nil, false, err
	}
	if tok.Type == lexer.EOF {
		return nil, false, nil
	}
	v, err = r.readForm()
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *Reader) readForm() (value.Value, error) {
	tok, err := r.lex.Next()
	if err != nil {
		return nil, err
	}
	switch tok.Type {
	case lexer.EOF:
		return nil, interr.At(interr.PrematureEOF(), tok.Pos)
	case lexer.LPAREN:
		return r.readList(tok.Pos)
	case lexer.RPAREN:
		return nil, interr.At(interr.MalformedToken("unexpected )"), tok.Pos)
	case lexer.QUOTE:
		inner, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return value.NewQuote(inner), nil
	case lexer.BACKQUOTE:
		inner, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return value.NewBackquote(inner), nil
	case lexer.COMMA:
		inner, err := r.readForm()
		if err != nil {
			return nil, err
		}
		return value.NewComma(inner), nil
	case lexer.INT:
		return value.NewInt(int32(tok.IntVal)), nil
	case lexer.DOUBLE:
		return value.NewDouble(tok.DoubleVal), nil
	case lexer.STRING:
		return value.NewStringBytes(tok.StrVal), nil
	case lexer.IDENT:
		return value.NewIdent(tok.Text), nil
	default:
		return nil, interr.At(interr.MalformedToken("unrecognized token"), tok.Pos)
	}
}

// readList implements list and dotted-pair syntax: `(a b . c)` is a
// pair whose tail is c; `(a b c)` is a proper list ending in nil.
// open is the position of the '(' already consumed, used for the EEOF
// raised if ')' never arrives.
func (r *Reader) readList(open interr.Position) (value.Value, error) {
	var elems []value.Value
	var tail value.Value

	for {
		peeked, err := r.lex.Peek()
		if err != nil {
			return nil, err
		}
		if peeked.Type == lexer.EOF {
			return nil, interr.At(interr.PrematureEOF(), open)
		}
		if peeked.Type == lexer.RPAREN {
			r.lex.Next()
			break
		}
		if peeked.Type == lexer.IDENT && peeked.Text == "." {
			r.lex.Next()
			tail, err = r.readForm()
			if err != nil {
				return nil, err
			}
			closeTok, err := r.lex.Next()
			if err != nil {
				return nil, err
			}
			if closeTok.Type != lexer.RPAREN {
				return nil, interr.At(interr.MalformedToken("expected ) after dotted tail"), closeTok.Pos)
			}
			break
		}
		form, err := r.readForm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, form)
	}

	result := tail
	for i := len(elems) - 1; i >= 0; i-- {
		result = value.NewPair(elems[i], result)
	}
	return result, nil
}
