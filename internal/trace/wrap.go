package trace

// Wrap returns a parser that records an open and a close event around p on
// tag. While a silenced region is running the events go to the silent buffer
// instead. A nil registry returns p unchanged.
func Wrap[O any](r *Registry, tag, context, location string, p Parser[O]) Parser[O] {
	if r == nil {
		return p
	}
	return func(input string) Result[O] {
		t := r.target(tag)
		t.Open(context, input, location)
		res := p(input)
		t.Close(context, input, location, res.Kind, res.Describe())
		return enrich(r, input, location, context, res)
	}
}

// Silence returns a parser whose whole subtree records into the registry's
// silent buffer, so it is missing from the rendered trace of tag while still
// running normally. A nil registry returns p unchanged.
func Silence[O any](r *Registry, tag, context, location string, p Parser[O]) Parser[O] {
	if r == nil {
		return p
	}
	return func(input string) Result[O] {
		r.enterSilence(tag)
		res := runSilenced(r, input, context, location, p)
		return enrich(r, input, location, context, res)
	}
}

func runSilenced[O any](r *Registry, input, context, location string, p Parser[O]) Result[O] {
	defer r.leaveSilence()
	r.silent.Open(context, input, location)
	res := p(input)
	r.silent.Close(context, input, location, res.Kind, res.Describe())
	return res
}
