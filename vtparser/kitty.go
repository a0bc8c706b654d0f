package vtparser

// KittyFlags are the Kitty keyboard protocol's per-screen progressive
// enhancement bits (CSI ? u family).
type KittyFlags uint8

const (
	KittyDisambiguate      KittyFlags = 1 << iota // disambiguate escape codes
	KittyReportEventTypes                         // press/repeat/release
	KittyReportAlternate                          // alternate keys
	KittyReportAllAsEscape                        // report all keys as escape codes
	KittyReportText                               // associated text
)

// kittyStack is the push/pop flag stack for one screen buffer (primary or
// alt) — spec.md §4.2 requires the two screens carry independent stacks
// that swap roles on screen switch.
type kittyStack struct {
	stack []KittyFlags
}

func newKittyStack() kittyStack {
	return kittyStack{stack: []KittyFlags{0}}
}

func (k *kittyStack) current() KittyFlags {
	if len(k.stack) == 0 {
		return 0
	}
	return k.stack[len(k.stack)-1]
}

func (k *kittyStack) push(f KittyFlags) {
	k.stack = append(k.stack, f)
	if len(k.stack) > 32 {
		k.stack = k.stack[1:]
	}
}

func (k *kittyStack) pop(n int) {
	if n <= 0 {
		n = 1
	}
	for i := 0; i < n && len(k.stack) > 1; i++ {
		k.stack = k.stack[:len(k.stack)-1]
	}
}

func (k *kittyStack) set(f KittyFlags) {
	if len(k.stack) == 0 {
		k.stack = []KittyFlags{f}
		return
	}
	k.stack[len(k.stack)-1] = f
}
