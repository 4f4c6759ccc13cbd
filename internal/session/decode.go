package session

import (
	"fmt"

	"github.com/dshills/termvim/internal/event"
	"github.com/dshills/termvim/internal/highlight"
)

// toInt normalizes the integer widths the msgpack decoder may produce.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		return int(n), true
	case float32:
		return int(n), true
	default:
		return 0, false
	}
}

func argInt(args []any, i int) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	n, ok := toInt(args[i])
	if !ok {
		return 0, fmt.Errorf("argument %d is %T, want integer", i, args[i])
	}
	return n, nil
}

func argInts(args []any, idx ...int) ([]int, error) {
	out := make([]int, len(idx))
	for j, i := range idx {
		n, err := argInt(args, i)
		if err != nil {
			return nil, err
		}
		out[j] = n
	}
	return out, nil
}

// decodeUpdate turns one batched redraw update ([name, args, args, ...])
// into decoded events, one per args tuple. Unknown event kinds decode to
// nothing.
func decodeUpdate(update []any) ([]event.Event, error) {
	if len(update) == 0 {
		return nil, fmt.Errorf("empty redraw update")
	}
	kind, ok := update[0].(string)
	if !ok {
		return nil, fmt.Errorf("redraw update name is %T, want string", update[0])
	}

	var events []event.Event
	for _, raw := range update[1:] {
		args, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: argument tuple is %T, want array", kind, raw)
		}
		ev, err := decodeEvent(kind, args)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events, nil
}

// decodeEvent decodes a single (kind, args) tuple. A nil event with nil
// error means the kind is outside the supported subset and is ignored.
func decodeEvent(kind string, args []any) (event.Event, error) {
	switch kind {
	case "grid_resize":
		n, err := argInts(args, 0, 1, 2)
		if err != nil {
			return nil, err
		}
		return event.GridResize{Grid: n[0], Width: n[1], Height: n[2]}, nil

	case "grid_line":
		n, err := argInts(args, 0, 1, 2)
		if err != nil {
			return nil, err
		}
		if len(args) < 4 {
			return nil, fmt.Errorf("missing cell list")
		}
		rawCells, ok := args[3].([]any)
		if !ok {
			return nil, fmt.Errorf("cell list is %T, want array", args[3])
		}
		runs, err := decodeRuns(rawCells)
		if err != nil {
			return nil, err
		}
		// The wrap flag is absent on older servers.
		wrap := false
		if len(args) > 4 {
			if b, ok := args[4].(bool); ok {
				wrap = b
			}
		}
		return event.GridLine{Grid: n[0], Row: n[1], ColStart: n[2], Runs: runs, Wrap: wrap}, nil

	case "grid_clear":
		n, err := argInts(args, 0)
		if err != nil {
			return nil, err
		}
		return event.GridClear{Grid: n[0]}, nil

	case "grid_destroy":
		n, err := argInts(args, 0)
		if err != nil {
			return nil, err
		}
		return event.GridDestroy{Grid: n[0]}, nil

	case "grid_scroll":
		n, err := argInts(args, 0, 1, 2, 3, 4, 5, 6)
		if err != nil {
			return nil, err
		}
		return event.GridScroll{
			Grid: n[0], Top: n[1], Bot: n[2],
			Left: n[3], Right: n[4], Rows: n[5], Cols: n[6],
		}, nil

	case "grid_cursor_goto":
		n, err := argInts(args, 0, 1, 2)
		if err != nil {
			return nil, err
		}
		return event.CursorGoto{Grid: n[0], Row: n[1], Col: n[2]}, nil

	case "default_colors_set":
		n, err := argInts(args, 0, 1, 2)
		if err != nil {
			return nil, err
		}
		// Neovim sends -1 for channels the color scheme leaves unset,
		// which is exactly highlight.ColorUnset.
		return event.DefaultColorsSet{Foreground: n[0], Background: n[1], Special: n[2]}, nil

	case "hl_attr_define":
		id, err := argInt(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, fmt.Errorf("missing attribute dict")
		}
		def, err := decodeDef(args[1])
		if err != nil {
			return nil, err
		}
		return event.HlAttrDefine{ID: id, Def: def}, nil

	case "flush":
		return event.Flush{}, nil

	default:
		return nil, nil
	}
}

// decodeRuns decodes a grid_line cell list: each entry is
// [text, hl_id?, repeat?] with trailing elements omitted when unchanged.
func decodeRuns(raw []any) ([]event.Run, error) {
	runs := make([]event.Run, 0, len(raw))
	for _, rc := range raw {
		tuple, ok := rc.([]any)
		if !ok || len(tuple) == 0 {
			return nil, fmt.Errorf("cell entry is %T, want non-empty array", rc)
		}
		text, ok := tuple[0].(string)
		if !ok {
			return nil, fmt.Errorf("cell text is %T, want string", tuple[0])
		}
		run := event.Run{Text: text}
		if len(tuple) > 1 {
			hl, ok := toInt(tuple[1])
			if !ok {
				return nil, fmt.Errorf("cell highlight is %T, want integer", tuple[1])
			}
			run.HlID = hl
			run.HlSet = true
		}
		if len(tuple) > 2 {
			repeat, ok := toInt(tuple[2])
			if !ok {
				return nil, fmt.Errorf("cell repeat is %T, want integer", tuple[2])
			}
			run.Repeat = repeat
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// decodeDef decodes an hl_attr_define rgb attribute dict.
func decodeDef(raw any) (highlight.Def, error) {
	def := highlight.EmptyDef()
	dict, ok := raw.(map[string]any)
	if !ok {
		return def, fmt.Errorf("attribute dict is %T, want map", raw)
	}
	for key, val := range dict {
		switch key {
		case "foreground", "background", "special":
			n, ok := toInt(val)
			if !ok {
				return def, fmt.Errorf("%s is %T, want integer", key, val)
			}
			switch key {
			case "foreground":
				def.Foreground = n
			case "background":
				def.Background = n
			case "special":
				def.Special = n
			}
		case "reverse", "bold", "underline", "italic", "strikethrough":
			b, ok := val.(bool)
			if !ok {
				return def, fmt.Errorf("%s is %T, want bool", key, val)
			}
			switch key {
			case "reverse":
				def.Reverse = b
			case "bold":
				def.Bold = b
			case "underline":
				def.Underline = b
			case "italic":
				def.Italic = b
			case "strikethrough":
				def.Strikethrough = b
			}
		default:
			// Attributes outside the supported subset (undercurl,
			// blend, url, ...) are ignored.
		}
	}
	return def, nil
}
