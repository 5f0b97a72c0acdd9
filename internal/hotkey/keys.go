package hotkey

import (
	"fmt"
	"strings"

	"golang.design/x/hotkey"

	"github.com/victor141516/espoquen/internal/domain"
)

// Keys lists the bindable keys in menu order.
var Keys = []domain.Key{
	domain.KeyF1, domain.KeyF2, domain.KeyF3, domain.KeyF4,
	domain.KeyF5, domain.KeyF6, domain.KeyF7, domain.KeyF8,
	domain.KeyF9, domain.KeyF10, domain.KeyF11, domain.KeyF12,
}

var nativeKeys = map[domain.Key]hotkey.Key{
	domain.KeyF1:  hotkey.KeyF1,
	domain.KeyF2:  hotkey.KeyF2,
	domain.KeyF3:  hotkey.KeyF3,
	domain.KeyF4:  hotkey.KeyF4,
	domain.KeyF5:  hotkey.KeyF5,
	domain.KeyF6:  hotkey.KeyF6,
	domain.KeyF7:  hotkey.KeyF7,
	domain.KeyF8:  hotkey.KeyF8,
	domain.KeyF9:  hotkey.KeyF9,
	domain.KeyF10: hotkey.KeyF10,
	domain.KeyF11: hotkey.KeyF11,
	domain.KeyF12: hotkey.KeyF12,
}

// ParseKey converts a config/menu label such as "F6" into a bindable key.
func ParseKey(name string) (domain.Key, error) {
	key := domain.Key(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := nativeKeys[key]; !ok {
		return "", fmt.Errorf("unsupported hotkey %q (use F1-F12)", name)
	}
	return key, nil
}

func nativeKey(key domain.Key) (hotkey.Key, error) {
	native, ok := nativeKeys[key]
	if !ok {
		return 0, fmt.Errorf("unsupported hotkey %q", key)
	}
	return native, nil
}
