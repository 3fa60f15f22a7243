package interp

import "github.com/andycking/turtlego/parser"

// frame is a per-call execution context. Frames reference the shared
// variable map and function map by borrow, not by owning a clone:
// Repeat/For children and procedure calls alike share vmap and fmap
// with their caller, each with its own repcount.
type frame struct {
	repcount int
	vmap     map[string]Value
	fmap     parser.FuncMap
}

func newFrame(fmap parser.FuncMap) *frame {
	return &frame{vmap: make(map[string]Value), fmap: fmap}
}

// child returns a frame sharing this frame's vmap and fmap, with its
// own repcount — used by Repeat and For bodies.
func (f *frame) child() *frame {
	return &frame{repcount: 0, vmap: f.vmap, fmap: f.fmap}
}

// call returns a frame for a user-procedure invocation: the shared
// vmap and fmap, with repcount inherited from the caller.
func (f *frame) call() *frame {
	return &frame{repcount: f.repcount, vmap: f.vmap, fmap: f.fmap}
}
