package state

import "fmt"

// EffectKind tags an Effect variant. The duck-typed delta/valueSet/special
// objects of the legacy implementation are resolved into one explicit case
// per effect kind; count-dependent behaviors (souvenir and photo happiness)
// are the CountedStatDelta case driven by a named session counter.
type EffectKind string

const (
	EffectStatDelta        EffectKind = "stat_delta"
	EffectStatSet          EffectKind = "stat_set"
	EffectMoneyDelta       EffectKind = "money_delta"
	EffectGrantItem        EffectKind = "grant_item"
	EffectShowImage        EffectKind = "show_image"
	EffectCountedStatDelta EffectKind = "counted_stat_delta"
)

// Effect is one atomic state change. A batch of effects attached to an
// action, activity or item use is applied in list order.
type Effect struct {
	Kind EffectKind `json:"kind"`

	Stat  Stat `json:"stat,omitempty"`  // stat_delta, stat_set, counted_stat_delta
	Delta int  `json:"delta,omitempty"` // stat_delta, money_delta
	Value int  `json:"value,omitempty"` // stat_set

	Item *Item `json:"item,omitempty"` // grant_item

	ImageRef string `json:"image_ref,omitempty"` // show_image

	// Counter names the session counter selecting the delta from Table.
	// The table's last entry applies for counts beyond its length.
	Counter string `json:"counter,omitempty"` // counted_stat_delta
	Table   []int  `json:"table,omitempty"`   // counted_stat_delta
}

// StatDelta adjusts a stat by delta, clamped to [0,100].
func StatDelta(stat Stat, delta int) Effect {
	return Effect{Kind: EffectStatDelta, Stat: stat, Delta: delta}
}

// StatSet assigns a stat, clamped to [0,100].
func StatSet(stat Stat, value int) Effect {
	return Effect{Kind: EffectStatSet, Stat: stat, Value: value}
}

// MoneyDelta adjusts money, floored at zero.
func MoneyDelta(delta int) Effect {
	return Effect{Kind: EffectMoneyDelta, Delta: delta}
}

// GrantItem adds an item to the inventory, subject to the capacity rule.
func GrantItem(item Item) Effect {
	return Effect{Kind: EffectGrantItem, Item: &item}
}

// ShowImage surfaces an image to the presentation layer without touching
// game state.
func ShowImage(imageRef string) Effect {
	return Effect{Kind: EffectShowImage, ImageRef: imageRef}
}

// CountedStatDelta adjusts a stat by table[count], where count is the named
// session counter. The counter advances after each application.
func CountedStatDelta(stat Stat, counter string, table []int) Effect {
	return Effect{Kind: EffectCountedStatDelta, Stat: stat, Counter: counter, Table: table}
}

// Validate checks that the effect is structurally sound. Invalid effects in
// world data are a configuration error reported at load time.
func (e Effect) Validate() error {
	switch e.Kind {
	case EffectStatDelta, EffectStatSet:
		if !ValidStat(e.Stat) {
			return fmt.Errorf("effect %s: unknown stat %q", e.Kind, e.Stat)
		}
	case EffectMoneyDelta:
		if e.Delta == 0 {
			return fmt.Errorf("effect %s: zero delta", e.Kind)
		}
	case EffectGrantItem:
		if e.Item == nil || e.Item.Name == "" {
			return fmt.Errorf("effect %s: missing item", e.Kind)
		}
	case EffectShowImage:
		if e.ImageRef == "" {
			return fmt.Errorf("effect %s: missing image ref", e.Kind)
		}
	case EffectCountedStatDelta:
		if !ValidStat(e.Stat) {
			return fmt.Errorf("effect %s: unknown stat %q", e.Kind, e.Stat)
		}
		if e.Counter == "" {
			return fmt.Errorf("effect %s: missing counter name", e.Kind)
		}
		if len(e.Table) == 0 {
			return fmt.Errorf("effect %s: empty delta table", e.Kind)
		}
	default:
		return fmt.Errorf("unknown effect kind %q", e.Kind)
	}
	return nil
}

// Equal reports structural equality between two effects.
func (e Effect) Equal(other Effect) bool {
	if e.Kind != other.Kind || e.Stat != other.Stat || e.Delta != other.Delta ||
		e.Value != other.Value || e.ImageRef != other.ImageRef || e.Counter != other.Counter {
		return false
	}
	if len(e.Table) != len(other.Table) {
		return false
	}
	for i := range e.Table {
		if e.Table[i] != other.Table[i] {
			return false
		}
	}
	if (e.Item == nil) != (other.Item == nil) {
		return false
	}
	if e.Item != nil && !e.Item.Equal(*other.Item) {
		return false
	}
	return true
}
