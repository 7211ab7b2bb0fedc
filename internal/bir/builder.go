package bir

import "github.com/Veeupup/dada/internal/arena"

// Builder assembles a well-formed BirData one piece at a time. There is
// no lowering pass that drives it in this codebase; it exists so tests
// and tools can construct fixture Bir values without hand-maintaining
// arena indices.
type Builder struct {
	tables     Tables
	numParams  int
	paramsDone bool
	blocks     map[BasicBlock]*blockInProgress
}

type blockInProgress struct {
	statements []Statement
	terminator Terminator
	hasTerm    bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{blocks: make(map[BasicBlock]*blockInProgress)}
}

// AddParameter interns a new parameter local variable. All parameters
// must be added before any non-parameter local variable, so that
// Parameters() can return a contiguous id range; AddParameter enforces
// this by panicking if called after the first AddLocal.
func (b *Builder) AddParameter(name string, atomic bool) LocalVariable {
	if b.paramsDone {
		panic("bir: AddParameter called after AddLocal")
	}
	id := b.tables.LocalVariables.Add(LocalVariableData{Name: name, HasSpecifier: true, Atomic: atomic})
	b.numParams++
	return id
}

// AddLocal interns a non-parameter local variable (a named local or a
// compiler-introduced temporary, per HasSpecifier).
func (b *Builder) AddLocal(name string, hasSpecifier, atomic bool) LocalVariable {
	b.paramsDone = true
	return b.tables.LocalVariables.Add(LocalVariableData{Name: name, HasSpecifier: hasSpecifier, Atomic: atomic})
}

// NewBlock reserves a new, initially empty BasicBlock. Its statements
// and terminator are filled in later by AddStatement/SetTerminator;
// every reserved block must receive a terminator before Build is
// called.
func (b *Builder) NewBlock() BasicBlock {
	id := b.tables.BasicBlocks.Add(BasicBlockData{})
	b.blocks[id] = &blockInProgress{}
	return id
}

// AddStatement interns data and appends the resulting Statement to
// block's statement list. It panics if block was never reserved with
// NewBlock or already has a terminator.
func (b *Builder) AddStatement(block BasicBlock, data StatementData) Statement {
	bip := b.blockInProgress(block)
	if bip.hasTerm {
		panic("bir: AddStatement called after SetTerminator on the same block")
	}
	id := b.tables.Statements.Add(data)
	bip.statements = append(bip.statements, id)
	return id
}

// SetTerminator interns data as block's terminator. It panics if the
// block already has one.
func (b *Builder) SetTerminator(block BasicBlock, data TerminatorData) Terminator {
	bip := b.blockInProgress(block)
	if bip.hasTerm {
		panic("bir: SetTerminator called twice on the same block")
	}
	id := b.tables.Terminators.Add(data)
	bip.terminator = id
	bip.hasTerm = true
	return id
}

func (b *Builder) blockInProgress(block BasicBlock) *blockInProgress {
	bip, ok := b.blocks[block]
	if !ok {
		panic("bir: unknown BasicBlock (not returned by this Builder's NewBlock)")
	}
	return bip
}

// AddExpr interns a pure expression.
func (b *Builder) AddExpr(data ExprData) Expr { return b.tables.Exprs.Add(data) }

// AddPlace interns a readable place.
func (b *Builder) AddPlace(data PlaceData) Place { return b.tables.Places.Add(data) }

// AddTargetPlace interns an assignable place.
func (b *Builder) AddTargetPlace(data TargetPlaceData) TargetPlace {
	return b.tables.TargetPlaces.Add(data)
}

// LocalPlace is a convenience wrapper interning a PlaceData that simply
// reads v.
func (b *Builder) LocalPlace(v LocalVariable) Place {
	return b.AddPlace(LocalVariablePlace{Var: v})
}

// LocalTarget is a convenience wrapper interning a TargetPlaceData that
// simply assigns to v.
func (b *Builder) LocalTarget(v LocalVariable) TargetPlace {
	return b.AddTargetPlace(LocalVariableTarget{Var: v})
}

// Build finalizes every reserved block into the Tables and returns the
// completed BirData rooted at start. It panics if start was never
// reserved, or if any reserved block is missing a terminator -- a
// Builder bug, not a well-formedness question Check needs to answer.
func (b *Builder) Build(start BasicBlock) *BirData {
	if _, ok := b.blocks[start]; !ok {
		panic("bir: Build called with an unknown start block")
	}
	for id := arena.Id(1); id <= b.tables.BasicBlocks.Max(); id++ {
		bip, ok := b.blocks[id]
		if !ok {
			continue
		}
		if !bip.hasTerm {
			panic("bir: block has no terminator")
		}
		b.tables.BasicBlocks.Set(id, BasicBlockData{Statements: bip.statements, Terminator: bip.terminator})
	}
	tables := b.tables
	return &BirData{Tables: &tables, NumParameters: b.numParams, StartBasicBlock: start}
}
