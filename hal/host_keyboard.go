package hal

type chanKeyboard struct {
	ch chan KeyEvent
}

func newChanKeyboard() *chanKeyboard {
	return &chanKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *chanKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when nobody keeps up with the queue.
func (k *chanKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}
