package app

import (
	"github.com/Faultbox/lodscene/internal/editor"
	"github.com/Faultbox/lodscene/internal/engine/input"
	"github.com/Faultbox/lodscene/internal/scene"
)

var addKeys = map[input.Key]scene.Kind{
	input.Key1: scene.KindSolid,
	input.Key2: scene.KindAmbientLight,
	input.Key3: scene.KindPointLight,
	input.Key4: scene.KindDirectionalLight,
}

// hotkey maps a key press to an editor command. Keys with a modifier are
// left to the editor's mode handling. It returns nil for unbound keys.
func hotkey(e input.Event, st *editor.State) editor.Command {
	if e.Type != input.EventKeyDown || e.Mods.Has(input.ModCtrl) {
		return nil
	}
	if kind, ok := addKeys[e.Key]; ok {
		return editor.AddObject{Kind: kind}
	}
	switch e.Key {
	case input.KeyTab:
		return editor.SelectNext{}
	case input.KeyF1:
		o, ok := st.Store.Get(st.Selected())
		if !ok {
			return nil
		}
		return editor.SetVisible{ID: o.ID, Visible: !o.Visible}
	}
	return nil
}

// wantsScreenshot reports whether e requests a capture of the scene.
func wantsScreenshot(e input.Event) bool {
	return e.Type == input.EventKeyDown && e.Key == input.KeyF12
}
