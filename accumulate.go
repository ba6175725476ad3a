package anthropic

// Accumulator rebuilds a complete [Response] from a stream of events. Apply
// each event in arrival order, then call Response once Done reports true.
//
// The zero value is ready to use. An Accumulator enforces the message
// lifecycle: events that address a block that was never started, extend a
// stopped block, or arrive before message_start are rejected with a
// *ProtocolError, and the accumulator's state is left unchanged by the
// offending event.
type Accumulator struct {
	msg     Response
	started bool
	done    bool
	// open tracks which block indexes have started and not yet stopped.
	open map[int]bool
	// pending collects tool-input fragments per block; they parse as one
	// document at content_block_stop.
	pending map[int][]Delta
}

// Started reports whether a message_start has been applied.
func (a *Accumulator) Started() bool { return a.started }

// Done reports whether a message_stop has been applied.
func (a *Accumulator) Done() bool { return a.done }

// Apply folds one event into the message under construction.
func (a *Accumulator) Apply(e Event) error {
	switch v := e.(type) {
	case EventPing:
		return nil

	case EventMessageStart:
		if a.started {
			return &ProtocolError{Index: -1, Msg: "duplicate message_start"}
		}
		a.msg = v.Message
		a.msg.Content = Blocks()
		a.started = true
		a.open = make(map[int]bool)
		a.pending = make(map[int][]Delta)
		return nil

	case EventContentBlockStart:
		if err := a.ready(); err != nil {
			return err
		}
		if v.Index != a.msg.Content.Len() {
			return &ProtocolError{Index: v.Index, Msg: "block started out of order"}
		}
		a.msg.Content.Push(v.Block)
		a.open[v.Index] = true
		return nil

	case EventContentBlockDelta:
		if err := a.ready(); err != nil {
			return err
		}
		if !a.open[v.Index] {
			return a.blockErr(v.Index)
		}
		block, _ := a.msg.Content.At(v.Index)
		if _, ok := block.(ToolUseBlock); ok {
			// Individual fragments are rarely valid JSON; hold them until
			// the block stops.
			if _, ok := v.Delta.(JSONDelta); !ok {
				return &ContentMismatch{From: deltaName(v.Delta), To: blockName(block)}
			}
			a.pending[v.Index] = append(a.pending[v.Index], v.Delta)
			return nil
		}
		merged, err := block.MergeDeltas(v.Delta)
		if err != nil {
			return err
		}
		a.msg.Content.setAt(v.Index, merged)
		return nil

	case EventContentBlockStop:
		if err := a.ready(); err != nil {
			return err
		}
		if !a.open[v.Index] {
			return a.blockErr(v.Index)
		}
		if deltas := a.pending[v.Index]; len(deltas) > 0 {
			block, _ := a.msg.Content.At(v.Index)
			merged, err := block.MergeDeltas(deltas...)
			if err != nil {
				return err
			}
			a.msg.Content.setAt(v.Index, merged)
			delete(a.pending, v.Index)
		}
		a.open[v.Index] = false
		return nil

	case EventMessageDelta:
		if err := a.ready(); err != nil {
			return err
		}
		if v.StopReason != nil {
			a.msg.StopReason = v.StopReason
		}
		if v.StopSequence != nil {
			a.msg.StopSequence = v.StopSequence
		}
		if v.Usage != nil {
			if v.Usage.InputTokens != nil {
				a.msg.Usage.InputTokens += *v.Usage.InputTokens
			}
			if v.Usage.OutputTokens != nil {
				a.msg.Usage.OutputTokens += *v.Usage.OutputTokens
			}
			a.msg.Usage.CacheCreationInputTokens = addOpt(a.msg.Usage.CacheCreationInputTokens, v.Usage.CacheCreationInputTokens)
			a.msg.Usage.CacheReadInputTokens = addOpt(a.msg.Usage.CacheReadInputTokens, v.Usage.CacheReadInputTokens)
		}
		return nil

	case EventMessageStop:
		if err := a.ready(); err != nil {
			return err
		}
		a.done = true
		return nil

	default:
		return &ProtocolError{Index: -1, Msg: "unknown event"}
	}
}

func (a *Accumulator) ready() error {
	if !a.started {
		return &ProtocolError{Index: -1, Msg: "event before message_start"}
	}
	if a.done {
		return &ProtocolError{Index: -1, Msg: "event after message_stop"}
	}
	return nil
}

func (a *Accumulator) blockErr(index int) error {
	if _, ok := a.msg.Content.At(index); ok {
		return &ProtocolError{Index: index, Msg: "block already stopped"}
	}
	return &ProtocolError{Index: index, Msg: "block never started"}
}

// Response returns the accumulated message. It returns [ErrNoMessage] when
// no message_start was ever applied. Calling it before message_stop returns
// the message as built so far, with a nil stop reason.
func (a *Accumulator) Response() (Response, error) {
	if !a.started {
		return Response{}, ErrNoMessage
	}
	return a.msg, nil
}
