package interp

import (
	"math"
	"math/rand/v2"

	"github.com/andycking/turtlego/lexer"
	"github.com/andycking/turtlego/parser"
	"github.com/andycking/turtlego/render"
)

// Interpreter tree-walks a parsed program against a single turtle
// State, emitting render commands through a Sink. Not reentrant: one
// Run at a time per instance.
type Interpreter struct {
	state *State
	sink  render.Sink

	maxCommands uint64
	emitted     uint64
}

// New returns an Interpreter with a fresh turtle state at the origin.
// maxCommands caps the number of render commands a single Run may
// emit before aborting with an error (a runaway `repeat` guard); 0
// means unlimited.
func New(sink render.Sink, maxCommands uint64) *Interpreter {
	return &Interpreter{state: NewState(), sink: sink, maxCommands: maxCommands}
}

// State exposes the turtle's current pose for inspection. The
// interpreter itself never shares it across goroutines; the debugger's
// pose panel does not read it, it follows the emitted MoveTo commands.
func (in *Interpreter) State() *State {
	return in.state
}

// Run evaluates every top-level node in out, returning the value of
// the last node (or Void).
func (in *Interpreter) Run(out parser.Output) (Value, error) {
	f := newFrame(out.FMap)
	var last Value = Void{}
	for _, node := range out.List {
		v, err := in.eval(node, f)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func (in *Interpreter) eval(node parser.Node, f *frame) (Value, error) {
	switch t := node.(type) {
	case parser.NumberNode:
		return Number(t.Val), nil

	case parser.WordNode:
		v, ok := f.vmap[t.Name]
		if !ok {
			return nil, newError(0, "no such variable %s", t.Name)
		}
		return v, nil

	case parser.BinExprNode:
		return in.evalBinExpr(t, f)

	case parser.ListNode:
		items := make(List, 0, len(t.Items))
		for _, item := range t.Items {
			v, err := in.eval(item, f)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case parser.LetNode:
		v, err := in.eval(t.Val, f)
		if err != nil {
			return nil, err
		}
		f.vmap[t.Name] = v
		return Void{}, nil

	case parser.AssignNode:
		v, err := in.eval(t.Val, f)
		if err != nil {
			return nil, err
		}
		if _, ok := f.vmap[t.Name]; !ok {
			return nil, newError(0, "no such variable %s", t.Name)
		}
		f.vmap[t.Name] = v
		return Void{}, nil

	case parser.MoveNode:
		d, err := in.evalNumber(t.Distance, f)
		if err != nil {
			return nil, err
		}
		if t.Dir == parser.Backward {
			d = -d
		}
		if err := in.moveBy(d); err != nil {
			return nil, err
		}
		return Void{}, nil

	case parser.RotateNode:
		a, err := in.evalNumber(t.Angle, f)
		if err != nil {
			return nil, err
		}
		rad := toRadians(a)
		if t.Dir == parser.Right {
			in.state.Angle += rad
		} else {
			in.state.Angle -= rad
		}
		return Void{}, nil

	case parser.SetHeadingNode:
		a, err := in.evalNumber(t.Angle, f)
		if err != nil {
			return nil, err
		}
		in.state.Angle = toRadians(a)
		return Void{}, nil

	case parser.SetPositionNode:
		x := in.state.Pos.X
		y := in.state.Pos.Y
		if t.X != nil {
			v, err := in.evalNumber(t.X, f)
			if err != nil {
				return nil, err
			}
			x = v
		}
		if t.Y != nil {
			v, err := in.evalNumber(t.Y, f)
			if err != nil {
				return nil, err
			}
			y = v
		}
		if err := in.moveTo(x, y); err != nil {
			return nil, err
		}
		return Void{}, nil

	case parser.SetPenColorNode:
		v, err := in.eval(t.Color, f)
		if err != nil {
			return nil, err
		}
		rgba, err := resolveColor(v)
		if err != nil {
			return nil, err
		}
		in.state.PenColor = rgba
		return Void{}, nil

	case parser.SetScreenColorNode:
		v, err := in.eval(t.Color, f)
		if err != nil {
			return nil, err
		}
		rgba, err := resolveColor(v)
		if err != nil {
			return nil, err
		}
		in.state.ScreenColor = rgba
		return Void{}, nil

	case parser.PenNode:
		in.state.PenDown = t.Dir == parser.PenDown
		return Void{}, nil

	case parser.ShowTurtleNode:
		if err := in.emit(render.ShowTurtle{Show: t.Show}); err != nil {
			return nil, err
		}
		return Void{}, nil

	case parser.HomeNode:
		if err := in.moveTo(0, 0); err != nil {
			return nil, err
		}
		return Void{}, nil

	case parser.CleanNode:
		return Void{}, nil

	case parser.ClearScreenNode:
		if err := in.moveTo(0, 0); err != nil {
			return nil, err
		}
		return Void{}, nil

	case parser.RepcountNode:
		return Number(f.repcount), nil

	case parser.RepeatNode:
		return in.evalRepeat(t, f)

	case parser.ForNode:
		return in.evalFor(t, f)

	case parser.RandomNode:
		return in.evalRandom(t.Max, f)

	case parser.CallNode:
		return in.evalCall(t, f)

	case parser.MathNode:
		return in.evalMath(t, f)

	case parser.FillNode:
		if err := in.emit(render.Fill{
			Color: toRenderColor(in.state.PenColor),
			Pos:   render.Point{X: in.state.Pos.X, Y: in.state.Pos.Y},
		}); err != nil {
			return nil, err
		}
		return Void{}, nil

	default:
		return nil, newError(0, "cannot evaluate node")
	}
}

func (in *Interpreter) evalNumber(node parser.Node, f *frame) (float64, error) {
	v, err := in.eval(node, f)
	if err != nil {
		return 0, err
	}
	n, ok := v.(Number)
	if !ok {
		return 0, newError(0, "expected a number")
	}
	return float64(n), nil
}

func (in *Interpreter) evalBinExpr(t parser.BinExprNode, f *frame) (Value, error) {
	a, err := in.eval(t.A, f)
	if err != nil {
		return nil, err
	}
	b, err := in.eval(t.B, f)
	if err != nil {
		return nil, err
	}

	if t.Op == lexer.Add {
		if listA, ok := a.(List); ok {
			switch bv := b.(type) {
			case List:
				out := make(List, 0, len(listA)+len(bv))
				out = append(out, listA...)
				out = append(out, bv...)
				return out, nil
			case Number:
				out := make(List, 0, len(listA)+1)
				out = append(out, listA...)
				out = append(out, bv)
				return out, nil
			default:
				return nil, newError(0, "cannot evaluate list + %T", b)
			}
		}
	}

	numA, ok := a.(Number)
	if !ok {
		return nil, newError(0, "expected a number")
	}
	numB, ok := b.(Number)
	if !ok {
		return nil, newError(0, "expected a number")
	}

	switch t.Op {
	case lexer.Add:
		return numA + numB, nil
	case lexer.Subtract:
		return numA - numB, nil
	case lexer.Multiply:
		return numA * numB, nil
	case lexer.Divide:
		return numA / numB, nil
	case lexer.Modulo:
		return Number(math.Mod(float64(numA), float64(numB))), nil
	default:
		return nil, newError(0, "cannot evaluate operator %s", t.Op)
	}
}

func (in *Interpreter) evalRepeat(t parser.RepeatNode, f *frame) (Value, error) {
	n, err := in.evalNumber(t.Count, f)
	if err != nil {
		return nil, err
	}
	count := int(n)
	if count < 0 {
		count = 0
	}
	child := f.child()
	for i := 1; i <= count; i++ {
		child.repcount = i
		for _, stmt := range t.Body {
			if _, err := in.eval(stmt, child); err != nil {
				return nil, err
			}
		}
	}
	return Void{}, nil
}

func (in *Interpreter) evalFor(t parser.ForNode, f *frame) (Value, error) {
	init, err := in.evalNumber(t.Init, f)
	if err != nil {
		return nil, err
	}
	limit, err := in.evalNumber(t.Limit, f)
	if err != nil {
		return nil, err
	}
	step, err := in.evalNumber(t.Step, f)
	if err != nil {
		return nil, err
	}

	child := f.child()
	child.vmap[t.Var] = Number(init)

	for v := init; (step >= 0 && v <= limit) || (step < 0 && v >= limit); v += step {
		child.vmap[t.Var] = Number(v)
		for _, stmt := range t.Body {
			if _, err := in.eval(stmt, child); err != nil {
				return nil, err
			}
		}
		if step == 0 {
			break
		}
	}
	return Void{}, nil
}

func (in *Interpreter) evalRandom(node parser.Node, f *frame) (Value, error) {
	m, err := in.evalNumber(node, f)
	if err != nil {
		return nil, err
	}
	n := int(math.Round(m))
	if n <= 0 {
		return Number(0), nil
	}
	return Number(rand.IntN(n + 1)), nil
}

func (in *Interpreter) evalCall(t parser.CallNode, f *frame) (Value, error) {
	if t.Name == "random" {
		if len(t.Args) != 1 {
			return nil, newError(0, "1 items expected")
		}
		argNode, err := nodeFromRawToken(t.Args[0])
		if err != nil {
			return nil, err
		}
		return in.evalRandom(argNode, f)
	}

	fd, ok := f.fmap[t.Name]
	if !ok {
		return nil, newError(0, "no such function %s", t.Name)
	}
	child := f.call()
	for _, stmt := range fd.Body {
		if _, err := in.eval(stmt, child); err != nil {
			return nil, err
		}
	}
	return Void{}, nil
}

func (in *Interpreter) evalMath(t parser.MathNode, f *frame) (Value, error) {
	arg, err := in.evalNumber(t.Arg, f)
	if err != nil {
		return nil, err
	}
	switch t.Op {
	case parser.MathSin:
		return Number(math.Sin(toRadians(arg))), nil
	case parser.MathCos:
		return Number(math.Cos(toRadians(arg))), nil
	case parser.MathAtan:
		return Number(toDegrees(math.Atan(arg))), nil
	case parser.MathSqrt:
		return Number(math.Sqrt(arg)), nil
	case parser.MathLn:
		return Number(math.Log(arg)), nil
	case parser.MathLog10:
		return Number(math.Log10(arg)), nil
	case parser.MathRound:
		return Number(math.Round(arg)), nil
	default:
		return nil, newError(0, "cannot evaluate math operator")
	}
}

// moveBy advances the turtle by d along its current heading, emitting
// a MoveTo with distance 0 per the wire contract (position carries the
// motion, not the distance field).
func (in *Interpreter) moveBy(d float64) error {
	h := math.Pi/2 - in.state.Angle
	newPos := Pos{
		X: math.Round(in.state.Pos.X + d*math.Cos(h)),
		Y: math.Round(in.state.Pos.Y + d*math.Sin(h)),
	}
	return in.emitMove(h, newPos)
}

// moveTo relocates the turtle directly to (x, y). The reported angle
// follows the source's own (non-intuitive) formula; callers must not
// rely on its numeric meaning.
func (in *Interpreter) moveTo(x, y float64) error {
	h := math.Atan2(in.state.Pos.Y, in.state.Pos.X) - math.Atan2(y, x)
	return in.emitMove(h, Pos{X: x, Y: y})
}

func (in *Interpreter) emitMove(angle float64, newPos Pos) error {
	cmd := render.MoveTo{
		Angle:    angle,
		Color:    toRenderColor(in.state.PenColor),
		Distance: 0,
		Flags:    in.penFlags(),
		Pos:      render.Point{X: newPos.X, Y: newPos.Y},
	}
	if err := in.emit(cmd); err != nil {
		return err
	}
	in.state.Pos = newPos
	return nil
}

// emit sends cmd through the sink, aborting the run once maxCommands
// has been emitted — a runaway `repeat`/`for` otherwise has no upper
// bound on the work it hands the renderer.
func (in *Interpreter) emit(cmd render.Command) error {
	if in.maxCommands > 0 && in.emitted >= in.maxCommands {
		return newError(0, "render command limit exceeded (max %d)", in.maxCommands)
	}
	if err := in.sink.Send(cmd); err != nil {
		return newError(0, "send failed: %v", err)
	}
	in.emitted++
	return nil
}

func (in *Interpreter) penFlags() uint32 {
	var flags uint32
	if in.state.PenDown {
		flags = render.PenDown(flags)
	} else {
		flags = render.PenUp(flags)
	}
	switch in.state.PenMode {
	case Paint:
		flags |= render.FlagPaint
	case Erase:
		flags |= render.FlagErase
	case Reverse:
		flags |= render.FlagReverse
	}
	return flags
}

func toRenderColor(c RGBA) render.Color {
	return render.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// nodeFromRawToken converts a single captured call-argument token into
// an expression node for the rare case (Call{"random", ...}) the
// parser never actually produces but the node shapes allow for.
func nodeFromRawToken(tok lexer.Token) (parser.Node, error) {
	switch t := tok.(type) {
	case lexer.Number:
		return parser.NumberNode{Val: t.Val}, nil
	case lexer.Word:
		return parser.WordNode{Name: t.Name}, nil
	default:
		return nil, newError(tok.Pos(), "expected an expression, number, list or word")
	}
}
