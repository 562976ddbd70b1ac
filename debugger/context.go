package debugger

type context struct {
	breaks []error
}

func (ctx *context) Reset() {
	ctx.breaks = ctx.breaks[:0]
}

func (ctx *context) Break(e error) {
	ctx.breaks = append(ctx.breaks, e)
}
