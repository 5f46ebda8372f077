package runtime

import (
	"testing"

	"github.com/odvcencio/furry-virtual/terminal"
)

func newTree() (root, left, right *boxWidget) {
	left = &boxWidget{name: "left", bounds: Rect{X: 0, Y: 0, Width: 5, Height: 4}}
	right = &boxWidget{name: "right", bounds: Rect{X: 5, Y: 0, Width: 5, Height: 4}}
	root = &boxWidget{name: "root", bounds: Rect{Width: 10, Height: 4}, children: []Widget{left, right}}
	return root, left, right
}

func TestScreen_PathAt(t *testing.T) {
	root, _, right := newTree()
	screen := NewScreen(10, 4)
	screen.SetRoot(root)

	path := screen.PathAt(7, 1)
	if len(path) != 2 || path[0] != root || path[1] != right {
		t.Fatalf("path = %v, want [root right]", path)
	}
	if got := screen.PathAt(20, 1); len(got) != 0 {
		t.Fatalf("path outside = %v, want empty", got)
	}
}

func TestScreen_MouseBubblesToAncestor(t *testing.T) {
	root, left, _ := newTree()
	root.handle = func(Message) HandleResult { return Handled() }
	screen := NewScreen(10, 4)
	screen.SetRoot(root)

	result := screen.HandleMessage(MouseMsg{X: 1, Y: 1, Action: terminal.MousePress, Button: terminal.MouseLeft})
	if !result.Handled {
		t.Fatal("expected root to handle bubbled press")
	}
	if len(left.messages) != 1 || len(root.messages) != 1 {
		t.Fatalf("left=%d root=%d, want 1 each", len(left.messages), len(root.messages))
	}
}

func TestScreen_HoverEnterLeave(t *testing.T) {
	root, left, right := newTree()
	screen := NewScreen(10, 4)
	screen.SetRoot(root)

	screen.HandleMessage(MouseMsg{X: 1, Y: 1, Action: terminal.MouseMove})
	if root.entered != 1 || left.entered != 1 || right.entered != 0 {
		t.Fatalf("after first move root=%d left=%d right=%d", root.entered, left.entered, right.entered)
	}
	screen.HandleMessage(MouseMsg{X: 6, Y: 1, Action: terminal.MouseMove})
	if left.left != 1 || right.entered != 1 || root.entered != 1 || root.left != 0 {
		t.Fatalf("after crossing left=%d/%d right=%d root=%d/%d",
			left.entered, left.left, right.entered, root.entered, root.left)
	}
	screen.TrackHover(50, 50)
	if root.left != 1 || right.left != 1 {
		t.Fatalf("after exit root.left=%d right.left=%d", root.left, right.left)
	}
}

func TestScreen_ModalLayerBlocksBelow(t *testing.T) {
	root, left, _ := newTree()
	overlay := &boxWidget{name: "overlay", bounds: Rect{X: 8, Y: 3, Width: 2, Height: 1}}
	screen := NewScreen(10, 4)
	screen.SetRoot(root)
	screen.PushLayer(overlay, true)

	screen.HandleMessage(MouseMsg{X: 1, Y: 1, Action: terminal.MousePress})
	if len(left.messages) != 0 {
		t.Fatal("press leaked under a modal layer")
	}
	screen.HandleMessage(KeyMsg{Key: terminal.KeyEnter})
	if len(root.messages) != 0 || len(overlay.messages) != 1 {
		t.Fatalf("key went to root=%d overlay=%d", len(root.messages), len(overlay.messages))
	}
}

func TestScreen_OverlayCommandsApplied(t *testing.T) {
	overlay := &boxWidget{name: "overlay"}
	root := &boxWidget{name: "root", handle: func(Message) HandleResult {
		return WithCommand(PushOverlay{Widget: overlay})
	}}
	screen := NewScreen(4, 4)
	screen.SetRoot(root)

	result := screen.HandleMessage(KeyMsg{Key: terminal.KeyEnter})
	if len(result.Commands) != 0 {
		t.Fatalf("overlay command escaped the screen: %v", result.Commands)
	}
	if screen.LayerCount() != 2 || screen.TopLayer().Root != overlay {
		t.Fatalf("layers = %d, want overlay on top", screen.LayerCount())
	}
}
