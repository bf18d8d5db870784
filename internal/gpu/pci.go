package gpu

import (
	"fmt"
	"strings"

	"github.com/jaypipes/ghw/pkg/gpu"

	"voltgui/internal/logging"
)

// ListCards enumerates display controllers from the PCI bus.
func ListCards(logger *logging.Logger) ([]Card, error) {
	info, err := gpu.New()
	if err != nil {
		logger.Warn("gpu.pci.failed", "Failed to enumerate graphics cards", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("enumerate graphics cards: %w", err)
	}

	cards := make([]Card, 0, len(info.GraphicsCards))
	for _, gc := range info.GraphicsCards {
		card := Card{Index: gc.Index, Address: gc.Address}
		if dev := gc.DeviceInfo; dev != nil {
			if dev.Vendor != nil {
				card.Vendor = dev.Vendor.Name
			}
			if dev.Product != nil {
				card.Product = dev.Product.Name
			}
			card.Driver = dev.Driver
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Label returns a one-line description of the card.
func (c Card) Label() string {
	parts := make([]string, 0, 3)
	if c.Vendor != "" {
		parts = append(parts, c.Vendor)
	}
	if c.Product != "" {
		parts = append(parts, c.Product)
	}
	if len(parts) == 0 {
		parts = append(parts, "Unknown device")
	}
	label := strings.Join(parts, " ")
	if c.Driver != "" {
		label += " (" + c.Driver + ")"
	}
	return label
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
