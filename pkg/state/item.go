package state

import "fmt"

// UseAction describes what happens when an item is used from the bag.
// Items with Effects are consumed on use. Items with only an ImageRef are
// viewable: using them displays the image and the item stays in the bag.
type UseAction struct {
	Label    string   `json:"label"`
	Effects  []Effect `json:"effects,omitempty"`
	ImageRef string   `json:"image_ref,omitempty"`
}

// Item is an inventory item instance. Items without a UseAction are inert
// display-only collectibles.
type Item struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Rarity      string     `json:"rarity,omitempty"`
	ImageRef    string     `json:"image_ref,omitempty"`
	UseAction   *UseAction `json:"use_action,omitempty"`
}

// Usable reports whether using the item does anything at all.
func (it Item) Usable() bool {
	return it.UseAction != nil
}

// Viewable reports whether the item's use only shows an image. Viewable
// items are reusable and never removed on use.
func (it Item) Viewable() bool {
	return it.UseAction != nil && len(it.UseAction.Effects) == 0 && it.UseAction.ImageRef != ""
}

// Validate checks that the item and its use effects are structurally
// sound. Catalog items are checked at world load; hydrated inventory items
// are checked again because persisted blobs can be tampered with.
func (it Item) Validate() error {
	if it.Name == "" {
		return fmt.Errorf("item missing name")
	}
	if it.UseAction != nil {
		for i, e := range it.UseAction.Effects {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("use effect %d: %w", i, err)
			}
		}
	}
	return nil
}

// Equal reports structural equality between two items. Inventory removal
// targets the first structurally equal entry, not a positional index.
func (it Item) Equal(other Item) bool {
	if it.Name != other.Name || it.Description != other.Description ||
		it.Rarity != other.Rarity || it.ImageRef != other.ImageRef {
		return false
	}
	if (it.UseAction == nil) != (other.UseAction == nil) {
		return false
	}
	if it.UseAction == nil {
		return true
	}
	if it.UseAction.Label != other.UseAction.Label ||
		it.UseAction.ImageRef != other.UseAction.ImageRef ||
		len(it.UseAction.Effects) != len(other.UseAction.Effects) {
		return false
	}
	for i := range it.UseAction.Effects {
		if !it.UseAction.Effects[i].Equal(other.UseAction.Effects[i]) {
			return false
		}
	}
	return true
}
