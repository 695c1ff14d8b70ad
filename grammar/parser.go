package grammar

import (
	"fmt"
	"io"
)

// Parse reads an attributed-EBNF DSL source and builds a Table with a
// fully wired Node graph per nonterminal. This is the "grammar
// ingestion" collaborator spec.md §1 treats as external; it is
// implemented here (rather than assumed) so the core is runnable end
// to end. See SPEC_FULL.md §4.11 for the accepted grammar.
func Parse(file string, r io.Reader) (*Table, error) {
	buf, err := NewBuffer(r)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	p := &parser{lex: newLexer(buf, file), tab: NewTable(), file: file}
	p.tab.SrcName = file
	if err := p.parseGrammar(); err != nil {
		return nil, err
	}
	return p.tab, nil
}

type parser struct {
	lex  *lexer
	tab  *Table
	file string

	tok  Token
	prev Token
}

func (p *parser) advance() error {
	p.prev = p.tok
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(k TokenKind) (Token, error) {
	if p.tok.Kind != k {
		return Token{}, fmt.Errorf("%s: expected %s, got %s %q", p.tok.Pos, k, p.tok.Kind, p.tok.Literal)
	}
	tok := p.tok
	err := p.advance()
	return tok, err
}

func (p *parser) parseGrammar() error {
	if err := p.advance(); err != nil {
		return err
	}
	if _, err := p.expect(TokKwGrammar); err != nil {
		return err
	}
	nameTok, err := p.expect(TokIdent)
	if err != nil {
		return err
	}
	name := nameTok.Literal

	if p.tok.Kind == TokSemAction {
		pos := p.tok.Pos
		pos.File = p.file
		p.tab.SemDeclPos = &pos
		if err := p.advance(); err != nil {
			return err
		}
	}

	if p.tok.Kind == TokKwTokens {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parseTokens(); err != nil {
			return err
		}
	}
	if p.tok.Kind == TokKwPragmas {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.parsePragmas(); err != nil {
			return err
		}
	}
	if _, err := p.expect(TokKwProductions); err != nil {
		return err
	}
	if err := p.parseProductions(); err != nil {
		return err
	}
	if _, err := p.expect(TokKwEnd); err != nil {
		return err
	}
	endName, err := p.expect(TokIdent)
	if err != nil {
		return err
	}
	if endName.Literal != name {
		return fmt.Errorf("%s: END name %q does not match GRAMMAR name %q", endName.Pos, endName.Literal, name)
	}
	_, err = p.expect(TokDot)
	return err
}

func (p *parser) parseTokens() error {
	for p.tok.Kind == TokIdent || p.tok.Kind == TokString {
		name := p.tok.Literal
		isLiteral := p.tok.Kind == TokString
		if err := p.advance(); err != nil {
			return err
		}
		sym := &Symbol{Name: name, Kind: Terminal, N: len(p.tab.Terminals)}
		p.tab.Terminals = append(p.tab.Terminals, sym)
		if isLiteral {
			p.tab.Literals[name] = sym
		}
		if p.tok.Kind == TokKwInherits {
			if err := p.advance(); err != nil {
				return err
			}
			parentTok, err := p.expect(TokIdent)
			if err != nil {
				return err
			}
			parent := p.tab.FindTerminal(parentTok.Literal)
			if parent == nil {
				return fmt.Errorf("%s: INHERITS parent %q not declared", parentTok.Pos, parentTok.Literal)
			}
			if wouldCycle(parent, sym) {
				return fmt.Errorf("%s: INHERITS %q would create a cycle", parentTok.Pos, parentTok.Literal)
			}
			sym.Inherits = parent
		}
	}
	return nil
}

func wouldCycle(parent, child *Symbol) bool {
	for s := parent; s != nil; s = s.Inherits {
		if s == child {
			return true
		}
	}
	return false
}

func (p *parser) parsePragmas() error {
	for p.tok.Kind == TokIdent {
		name := p.tok.Literal
		if err := p.advance(); err != nil {
			return err
		}
		sym := &Symbol{Name: name, Kind: Pragma, N: len(p.tab.Pragmas)}
		p.tab.Pragmas = append(p.tab.Pragmas, sym)
		if p.tok.Kind == TokSemAction {
			pos := p.tok.Pos
			pos.File = p.file
			sym.SemPos = &pos
			if err := p.advance(); err != nil {
				return err
			}
		}
	}
	return nil
}

// literalSymbol resolves a String token's text used in a production
// body (or an ANY/WEAK operand) to its Symbol, creating a fresh literal
// terminal on first use — matching Coco/R's "undeclared literal becomes
// its own terminal" convention.
func (p *parser) literalSymbol(lit string) *Symbol {
	if sym, ok := p.tab.Literals[lit]; ok {
		return sym
	}
	sym := &Symbol{Name: lit, Kind: Terminal, N: len(p.tab.Terminals)}
	p.tab.Terminals = append(p.tab.Terminals, sym)
	p.tab.Literals[lit] = sym
	return sym
}

func (p *parser) identSymbol(name string) *Node {
	if t := p.tab.FindTerminal(name); t != nil {
		n := p.tab.NewNode(KindT)
		n.Sym = t
		return n
	}
	nt := p.tab.FindNonterminal(name)
	if nt == nil {
		nt = &Symbol{Name: name, Kind: Nonterminal, N: len(p.tab.Nonterminals)}
		p.tab.Nonterminals = append(p.tab.Nonterminals, nt)
	}
	n := p.tab.NewNode(KindNT)
	n.Sym = nt
	return n
}

func (p *parser) parseProductions() error {
	if p.tok.Kind != TokIdent {
		return fmt.Errorf("%s: expected a production, got %s", p.tok.Pos, p.tok.Kind)
	}
	// The start symbol is whichever nonterminal's production is declared first.
	for p.tok.Kind == TokIdent {
		nameTok := p.tok
		if err := p.advance(); err != nil {
			return err
		}
		sym := p.tab.FindNonterminal(nameTok.Literal)
		if sym == nil {
			sym = &Symbol{Name: nameTok.Literal, Kind: Nonterminal, N: len(p.tab.Nonterminals)}
			p.tab.Nonterminals = append(p.tab.Nonterminals, sym)
		}
		if p.tab.GramSy == nil {
			p.tab.GramSy = sym
		}
		if _, err := p.expect(TokAssign); err != nil {
			return err
		}
		head, err := p.parseExpression()
		if err != nil {
			return err
		}
		sym.Graph = head
		if _, err := p.expect(TokDot); err != nil {
			return err
		}
	}
	return nil
}

// parseExpression parses a '|'-separated list of sequences. If there is
// exactly one alternative, its sequence is returned unwrapped; otherwise
// an alt node chain (linked by Down) is built, one per alternative.
func (p *parser) parseExpression() (*Node, error) {
	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != TokBar {
		return first, nil
	}

	altHead := p.tab.NewNode(KindAlt)
	altHead.Sub = first
	cur := altHead
	for p.tok.Kind == TokBar {
		if err := p.advance(); err != nil {
			return nil, err
		}
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		next := p.tab.NewNode(KindAlt)
		next.Sub = seq
		cur.Down = next
		cur = next
	}
	return altHead, nil
}

func isSequenceTerminator(k TokenKind) bool {
	switch k {
	case TokBar, TokRParen, TokRBrack, TokRBrace, TokDot, TokEOF:
		return true
	}
	return false
}

// parseSequence parses a run of factors, returning the head of a Next
// chain whose final node has Up set. An empty sequence yields a single
// Eps node.
func (p *parser) parseSequence() (*Node, error) {
	if isSequenceTerminator(p.tok.Kind) {
		eps := p.tab.NewNode(KindEps)
		eps.Up = true
		return eps, nil
	}

	var head, tail *Node
	for !isSequenceTerminator(p.tok.Kind) {
		fHead, fTail, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = fHead
		} else {
			tail.Next = fHead
		}
		tail = fTail
	}
	tail.Up = true
	return head, nil
}

// parseFactor parses one syntactic factor and returns the (head, tail)
// of the node fragment it contributes to the enclosing sequence. Most
// factors are a single node (head == tail); a parenthesized group with
// exactly one alternative splices its inner sequence in directly.
func (p *parser) parseFactor() (*Node, *Node, error) {
	switch p.tok.Kind {
	case TokIdent:
		n := p.identSymbol(p.tok.Literal)
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		return n, n, nil

	case TokString:
		sym := p.literalSymbol(p.tok.Literal)
		n := p.tab.NewNode(KindT)
		n.Sym = sym
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		return n, n, nil

	case TokKwWeak:
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		var sym *Symbol
		switch p.tok.Kind {
		case TokIdent:
			sym = p.tab.FindTerminal(p.tok.Literal)
			if sym == nil {
				return nil, nil, fmt.Errorf("%s: WEAK target %q is not a declared terminal", p.tok.Pos, p.tok.Literal)
			}
		case TokString:
			sym = p.literalSymbol(p.tok.Literal)
		default:
			return nil, nil, fmt.Errorf("%s: expected terminal after WEAK, got %s", p.tok.Pos, p.tok.Kind)
		}
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		n := p.tab.NewNode(KindWT)
		n.Sym = sym
		return n, n, nil

	case TokKwAny:
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		n := p.tab.NewNode(KindAny)
		if p.tok.Kind == TokLParen {
			if err := p.advance(); err != nil {
				return nil, nil, err
			}
			n.Set = NewTerminalSet(len(p.tab.Terminals))
			for {
				if p.tok.Kind != TokIdent && p.tok.Kind != TokString {
					return nil, nil, fmt.Errorf("%s: expected terminal in ANY(...) list", p.tok.Pos)
				}
				var sym *Symbol
				if p.tok.Kind == TokString {
					sym = p.literalSymbol(p.tok.Literal)
				} else {
					sym = p.tab.FindTerminal(p.tok.Literal)
					if sym == nil {
						return nil, nil, fmt.Errorf("%s: %q is not a declared terminal", p.tok.Pos, p.tok.Literal)
					}
				}
				if err := p.advance(); err != nil {
					return nil, nil, err
				}
				n.Set.Set(sym.N, true)
				if p.tok.Kind != TokBar {
					break
				}
				if err := p.advance(); err != nil {
					return nil, nil, err
				}
			}
			if _, err := p.expect(TokRParen); err != nil {
				return nil, nil, err
			}
		}
		// else: bare ANY, Set left nil — filled in to "every terminal" by
		// sets.Prepare once the full terminal count is known.
		return n, n, nil

	case TokKwSync:
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		n := p.tab.NewNode(KindSync)
		// Set is filled in by sets.Prepare from context (spec.md treats
		// AnySync set computation as an external collaborator).
		return n, n, nil

	case TokResolver:
		pos := p.tok.Pos
		pos.File = p.file
		n := p.tab.NewNode(KindRslv)
		n.Pos = &pos
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		return n, n, nil

	case TokSemAction:
		pos := p.tok.Pos
		pos.File = p.file
		n := p.tab.NewNode(KindSem)
		n.Pos = &pos
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		return n, n, nil

	case TokLBrack:
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(TokRBrack); err != nil {
			return nil, nil, err
		}
		n := p.tab.NewNode(KindOpt)
		n.Sub = body
		return n, n, nil

	case TokLBrace:
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(TokRBrace); err != nil {
			return nil, nil, err
		}
		n := p.tab.NewNode(KindIter)
		n.Sub = body
		return n, n, nil

	case TokLParen:
		if err := p.advance(); err != nil {
			return nil, nil, err
		}
		body, err := p.parseExpression()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(TokRParen); err != nil {
			return nil, nil, err
		}
		if body.Kind == KindAlt {
			return body, body, nil
		}
		// single alternative: splice the inner sequence in directly. The
		// inner sequence's own Up boundary isn't a real boundary once
		// spliced — the enclosing parseSequence will set Up on whatever
		// node ends up last once it finishes chaining factors.
		tail := body
		for tail.Next != nil {
			tail = tail.Next
		}
		tail.Up = false
		return body, tail, nil

	default:
		return nil, nil, fmt.Errorf("%s: unexpected token %s %q in production", p.tok.Pos, p.tok.Kind, p.tok.Literal)
	}
}
