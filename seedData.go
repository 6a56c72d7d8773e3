package main

// The catalog is a static fixture. Nothing in the running system creates,
// mutates, or deletes products.
var dummyProducts = []Product{
	{
		ID:          "1",
		Name:        "Whey Protein",
		Description: "High-quality whey protein for muscle growth.",
		Price:       49.99,
		Category:    "Protein",
		Image:       "https://images.unsplash.com/photo-1693996045300-521e9d08cabc?q=80&w=1740&auto=format&fit=crop",
		BestSeller:  true,
	},
	{
		ID:          "2",
		Name:        "Creatine Monohydrate",
		Description: "Pure creatine for increased strength and performance.",
		Price:       29.99,
		Category:    "Performance",
		Image:       "https://images.unsplash.com/photo-1693996045435-af7c48b9cafb?q=80&w=1740&auto=format&fit=crop",
		BestSeller:  false,
	},
	{
		ID:          "3",
		Name:        "Pre-Workout",
		Description: "Explosive energy and focus for your workouts.",
		Price:       39.99,
		Category:    "Performance",
		Image:       "https://images.unsplash.com/photo-1704650311981-419f841421cc?q=80&w=1740&auto=format&fit=crop",
		BestSeller:  true,
	},
	{
		ID:          "4",
		Name:        "Multivitamin",
		Description: "Complete multivitamin for overall health.",
		Price:       19.99,
		Category:    "Health",
		Image:       "https://images.unsplash.com/photo-1729704200257-f0a9265d4b1b?q=80&w=774&auto=format&fit=crop",
		BestSeller:  false,
	},
	{
		ID:          "5",
		Name:        "Fish Oil",
		Description: "Omega-3 fatty acids for heart and brain health.",
		Price:       24.99,
		Category:    "Health",
		Image:       "https://images.unsplash.com/photo-1670850756988-a1943aa0e554?q=80&w=968&auto=format&fit=crop",
		BestSeller:  true,
	},
	{
		ID:          "6",
		Name:        "Vitamin D3",
		Description: "Essential for bone health and immune support.",
		Price:       14.99,
		Category:    "Health",
		Image:       "https://plus.unsplash.com/premium_photo-1709560425798-d9bb56dff78b?q=80&w=774&auto=format&fit=crop",
		BestSeller:  true,
	},
}

// seedOrders returns a fresh copy every call. The order store mutates status
// in place, so sessions must not share backing arrays.
func seedOrders() []Order {
	return []Order{
		{
			ID:           "ORD001",
			CustomerName: "John Doe",
			Date:         "2024-07-20",
			Status:       StatusDelivered,
			Products:     []Product{dummyProducts[0], dummyProducts[2]},
			ShippingInfo: ShippingInfo{
				Name:    "John Doe",
				Address: "123 Main St",
				City:    "Anytown",
				State:   "CA",
				Zip:     "12345",
				Email:   "john.doe@example.com",
			},
		},
		{
			ID:           "ORD002",
			CustomerName: "Jane Smith",
			Date:         "2024-07-21",
			Status:       StatusShipped,
			Products:     []Product{dummyProducts[1]},
			ShippingInfo: ShippingInfo{
				Name:    "Jane Smith",
				Address: "456 Oak Ave",
				City:    "Somecity",
				State:   "NY",
				Zip:     "67890",
				Email:   "jane.smith@example.com",
			},
		},
	}
}
