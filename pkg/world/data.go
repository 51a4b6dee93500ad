package world

import "github.com/jwebster45206/life-engine/pkg/state"

// Session counter names used by count-dependent effect tables.
const (
	CounterGunungSovenir = "gunung_sovenir"
	CounterGunungFoto    = "gunung_foto"
)

// Catalog item names.
const (
	ItemSovenirGunung = "Sovenir Gunung"
	ItemIkanDanau     = "Ikan Danau"
)

// Default returns the built-in world: the five locations with their
// canonical zone registries, the travel routes, and the item catalog.
// Callers must treat the result as read-only.
func Default() *World {
	return &World{
		Locations: map[state.Location]*LocationDef{
			state.LocationRumah:    rumah(),
			state.LocationGunung:   gunung(),
			state.LocationPantai:   pantai(),
			state.LocationDanau:    danau(),
			state.LocationBilliard: billiard(),
		},
		Routes: map[state.Location]Route{
			state.LocationRumah:    {Destination: state.LocationRumah, Cost: 0, Hours: 0},
			state.LocationGunung:   {Destination: state.LocationGunung, Cost: 100, Hours: 24},
			state.LocationPantai:   {Destination: state.LocationPantai, Cost: 50, Hours: 5},
			state.LocationDanau:    {Destination: state.LocationDanau, Cost: 150, Hours: 8},
			state.LocationBilliard: {Destination: state.LocationBilliard, Cost: 400, Hours: 24},
		},
		Items: map[string]state.Item{
			ItemSovenirGunung: sovenirGunung(),
			ItemIkanDanau:     ikanDanau(),
		},
	}
}

func sovenirGunung() state.Item {
	return state.Item{
		Name:        ItemSovenirGunung,
		Description: "Kenang-kenangan dari toko sovenir di gunung.",
		Rarity:      "Langka",
		ImageRef:    "objek/sovenir.png",
		UseAction: &state.UseAction{
			Label:    "Lihat",
			ImageRef: "gambar/sovenir-besar.png",
		},
	}
}

func ikanDanau() state.Item {
	return state.Item{
		Name:        ItemIkanDanau,
		Description: "Ikan segar hasil memancing di danau.",
		Rarity:      "Umum",
		ImageRef:    "objek/ikan.png",
		UseAction: &state.UseAction{
			Label: "Makan",
			Effects: []state.Effect{
				state.StatDelta(state.StatHunger, 20),
				state.StatDelta(state.StatHappiness, 5),
			},
		},
	}
}

func rumah() *LocationDef {
	return &LocationDef{
		Location: state.LocationRumah,
		Label:    "Rumah",
		Zones: []Zone{
			{
				ID:            "bed",
				Rect:          Rect{X: 60, Y: 135, Width: 302, Height: 305},
				LocationLabel: "di Kasur",
				Actions: []Action{
					{
						Label: "Tidur di Kasur",
						Hours: 8,
						Activity: &ActivityConfig{
							DurationMs: 5000,
							Message:    "Tidur...",
							Effects: []state.Effect{
								state.StatSet(state.StatEnergy, 70),
								state.StatDelta(state.StatHappiness, 5),
							},
						},
					},
				},
			},
			{
				ID:            "table",
				Rect:          Rect{X: 988, Y: 441, Width: 222, Height: 200},
				LocationLabel: "di Meja Makan",
				Actions: []Action{
					{
						Label: "Makan di Meja",
						Hours: 1,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 15),
							state.StatDelta(state.StatHappiness, 3),
						},
					},
				},
			},
			{
				ID:            "toilet",
				Rect:          Rect{X: 645, Y: 80, Width: 100, Height: 100},
				LocationLabel: "di Toilet",
				Actions: []Action{
					{
						Label: "Gunakan Toilet",
						Effects: []state.Effect{
							state.StatDelta(state.StatHygiene, 10),
						},
					},
				},
			},
			{
				ID:            "bathroom",
				Rect:          Rect{X: 1250, Y: 170, Width: 220, Height: 110},
				LocationLabel: "di Kamar Mandi",
				Actions: []Action{
					{
						Label: "Mandi",
						Hours: 1,
						Activity: &ActivityConfig{
							DurationMs: 3000,
							Message:    "Mandi...",
							Effects: []state.Effect{
								state.StatSet(state.StatHygiene, 100),
								state.StatDelta(state.StatHappiness, 5),
							},
						},
					},
				},
			},
		},
	}
}

func gunung() *LocationDef {
	return &LocationDef{
		Location: state.LocationGunung,
		Label:    "Gunung",
		Zones: []Zone{
			{
				ID:            "nginep",
				Rect:          Rect{X: 344, Y: 381, Width: 60, Height: 20},
				LocationLabel: "di Penginapan",
				Actions: []Action{
					{
						Label: "Menginap (Rp 200)",
						Cost:  200,
						Hours: 8,
						Activity: &ActivityConfig{
							DurationMs: 5000,
							Message:    "Menginap di penginapan...",
							Effects: []state.Effect{
								state.StatSet(state.StatEnergy, 70),
								state.StatDelta(state.StatHygiene, -10),
							},
						},
					},
					{
						Label: "Nginep + Mandi (Rp 200)",
						Cost:  200,
						Hours: 9,
						Activity: &ActivityConfig{
							DurationMs: 6000,
							Message:    "Menginap dan mandi...",
							Effects: []state.Effect{
								state.StatSet(state.StatEnergy, 100),
								state.StatSet(state.StatHygiene, 40),
							},
						},
					},
				},
			},
			{
				ID:            "cafe",
				Rect:          Rect{X: 670, Y: 427, Width: 60, Height: 20},
				LocationLabel: "di Kafe Gunung",
				DaytimeOnly:   true,
				Actions: []Action{
					{
						Label: "Beli Makan (Rp 40)",
						Cost:  40,
						Hours: 1,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 20),
							state.StatDelta(state.StatHappiness, 20),
							state.StatDelta(state.StatEnergy, 5),
							state.StatDelta(state.StatHygiene, -10),
						},
					},
					{
						Label: "Beli Minum (Rp 10)",
						Cost:  10,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 5),
							state.StatDelta(state.StatHappiness, 10),
							state.StatDelta(state.StatEnergy, 3),
							state.StatDelta(state.StatHygiene, -10),
						},
					},
				},
			},
			{
				ID:            "sovenir",
				Rect:          Rect{X: 750, Y: 560, Width: 100, Height: 140},
				LocationLabel: "di Toko Sovenir",
				DaytimeOnly:   true,
				Actions: []Action{
					{
						Label: "Beli Sovenir (Rp 50)",
						Cost:  50,
						Effects: []state.Effect{
							state.CountedStatDelta(state.StatHappiness, CounterGunungSovenir, []int{30, 10, -10}),
							state.GrantItem(sovenirGunung()),
						},
					},
				},
			},
			{
				ID:            "foto",
				Rect:          Rect{X: 555, Y: 610, Width: 70, Height: 20},
				LocationLabel: "di Spot Foto",
				DaytimeOnly:   true,
				Actions: []Action{
					{
						Label: "Lihat Spot Foto (Rp 100)",
						Cost:  100,
						Hours: 1,
						Effects: []state.Effect{
							state.CountedStatDelta(state.StatHappiness, CounterGunungFoto, []int{50, 0, -50}),
							state.ShowImage("gambar/foto-gunung.png"),
						},
					},
				},
			},
		},
	}
}

func pantai() *LocationDef {
	return &LocationDef{
		Location: state.LocationPantai,
		Label:    "Pantai",
		Zones: []Zone{
			{
				ID:            "laut",
				Rect:          Rect{X: 900, Y: 450, Width: 410, Height: 320},
				LocationLabel: "Berenang di Laut",
				Actions: []Action{
					{
						Label: "Berenang",
						Effects: []state.Effect{
							state.StatDelta(state.StatHappiness, 5),
							state.StatDelta(state.StatEnergy, -2),
							state.StatDelta(state.StatHygiene, 3),
						},
					},
				},
			},
			{
				ID:            "bar",
				Rect:          Rect{X: 70, Y: 100, Width: 350, Height: 250},
				LocationLabel: "Makan di Bar",
				Actions: []Action{
					{
						Label: "Makan (Rp 100)",
						Cost:  100,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 15),
							state.StatDelta(state.StatHappiness, 3),
						},
					},
				},
			},
			{
				ID:            "kelapa",
				Rect:          Rect{X: 700, Y: 100, Width: 250, Height: 350},
				LocationLabel: "Minum Kelapa",
				Actions: []Action{
					{
						Label: "Minum Kelapa (Rp 30)",
						Cost:  30,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 5),
							state.StatDelta(state.StatHappiness, 2),
						},
					},
				},
			},
			{
				ID:            "voli",
				Rect:          Rect{X: 180, Y: 500, Width: 345, Height: 150},
				LocationLabel: "Bermain Voli",
				Actions: []Action{
					{
						Label: "Main Voli",
						Effects: []state.Effect{
							state.StatDelta(state.StatHappiness, 8),
							state.StatDelta(state.StatEnergy, -5),
						},
					},
				},
			},
		},
	}
}

func danau() *LocationDef {
	return &LocationDef{
		Location: state.LocationDanau,
		Label:    "Danau",
		Zones: []Zone{
			{
				ID:            "bar",
				Rect:          Rect{X: 780, Y: 420, Width: 220, Height: 100},
				LocationLabel: "di Soda Bar Danau",
				Actions: []Action{
					{
						Label: "Beli Soda (Rp 30)",
						Cost:  30,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 15),
							state.StatDelta(state.StatHappiness, 3),
						},
					},
					{
						Label: "Beli Makanan (Rp 50)",
						Cost:  50,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 30),
							state.StatDelta(state.StatHappiness, 5),
						},
					},
				},
			},
			{
				ID:            "jetski",
				Rect:          Rect{X: 1100, Y: 300, Width: 250, Height: 200},
				LocationLabel: "di Jetski Rental",
				Actions: []Action{
					{
						Label: "Sewa Jetski (Rp 150)",
						Cost:  150,
						Effects: []state.Effect{
							state.StatDelta(state.StatHappiness, 20),
							state.StatDelta(state.StatEnergy, -10),
						},
					},
				},
			},
			{
				ID:            "mancing",
				Rect:          Rect{X: 320, Y: 590, Width: 345, Height: 130},
				LocationLabel: "di Spot Memancing",
				Actions: []Action{
					{
						// Negative cost: fishing earns money on completion.
						Label: "Mancing (Dapat Rp 200)",
						Cost:  -200,
						Activity: &ActivityConfig{
							DurationMs: 8000,
							Message:    "Memancing...",
							Effects: []state.Effect{
								state.StatDelta(state.StatHappiness, 8),
								state.StatDelta(state.StatEnergy, -5),
								state.GrantItem(ikanDanau()),
							},
						},
					},
				},
			},
			{
				ID:            "berenang",
				Rect:          Rect{X: 500, Y: 500, Width: 400, Height: 200},
				LocationLabel: "Berenang di Danau",
				Actions: []Action{
					{
						Label: "Berenang",
						Effects: []state.Effect{
							state.StatDelta(state.StatHappiness, 5),
							state.StatDelta(state.StatEnergy, -2),
							state.StatDelta(state.StatHygiene, 3),
						},
					},
				},
			},
		},
	}
}

func billiard() *LocationDef {
	return &LocationDef{
		Location: state.LocationBilliard,
		Label:    "Billiard",
		Zones: []Zone{
			{
				ID:            "bar",
				Rect:          Rect{X: 300, Y: 150, Width: 200, Height: 80},
				LocationLabel: "di Bar Billiard",
				Actions: []Action{
					{
						Label: "Beli Minuman (Rp 20)",
						Cost:  20,
						Effects: []state.Effect{
							state.StatDelta(state.StatHunger, 5),
							state.StatDelta(state.StatHappiness, 5),
						},
					},
				},
			},
			{
				ID:            "meja",
				Rect:          Rect{X: 500, Y: 400, Width: 300, Height: 250},
				LocationLabel: "Main Billiard",
				Actions: []Action{
					{
						Label: "Main Billiard",
						Hours: 1,
						Activity: &ActivityConfig{
							DurationMs: 6000,
							Message:    "Main billiard...",
							Effects: []state.Effect{
								state.StatDelta(state.StatHappiness, 15),
								state.StatDelta(state.StatEnergy, -5),
							},
						},
					},
				},
			},
			{
				ID:            "toilet",
				Rect:          Rect{X: 700, Y: 100, Width: 100, Height: 150},
				LocationLabel: "di Toilet Billiard",
				Actions: []Action{
					{
						Label: "Gunakan Toilet",
						Effects: []state.Effect{
							state.StatDelta(state.StatHygiene, 10),
						},
					},
				},
			},
		},
	}
}
