package cart

// Shipping is a flat base fee plus a per-jar surcharge. There is no
// carrier-rate lookup; the surcharge covers packing weight.
const (
	ShippingBaseFee   float64 = 50.0
	ShippingPerJarFee float64 = 30.0
)

func (c Cart) Subtotal() float64 {
	var subtotal float64
	for _, l := range c.Lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	return subtotal
}

func (c Cart) TotalQuantity() int32 {
	var qty int32
	for _, l := range c.Lines {
		qty += l.Quantity
	}
	return qty
}

func (c Cart) Shipping() float64 {
	if len(c.Lines) == 0 {
		return 0
	}
	return ShippingBaseFee + ShippingPerJarFee*float64(c.TotalQuantity())
}

func (c Cart) Total() float64 {
	return c.Subtotal() + c.Shipping()
}
