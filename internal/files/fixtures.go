package files

import "github.com/boxity/boxity/internal/models"

// Fixtures returns a fresh copy of the demo batches used when nothing is
// persisted. Fixture events carry fixed hash and ledger values.
func Fixtures() []models.Batch {
	return []models.Batch{
		{
			ID:            "CHT-001-ABC",
			ProductName:   "VitaTabs 10mg",
			SKU:           "VT-10MG-001",
			Origin:        "VitaLabs Pvt Ltd",
			CreatedAt:     "2025-10-01T09:30:00Z",
			BaselineImage: "/demo/vitatabs.jpg",
			Events: []models.Event{
				{
					ID:        "evt-1",
					Actor:     "FastLogistics",
					Role:      "3PL",
					Timestamp: "2025-10-02T11:15:00Z",
					Note:      "Arrived at WH. No damage",
					Image:     "/demo/wh1.jpg",
					Hash:      "a7f5c8d9e2b1f4a6c3d8e9f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1",
					LedgerRef: "0x7A9F2E1B4C8D5A3E6F9B2C1D4E7A3B5C8D1E4F7A2B",
				},
				{
					ID:        "evt-2",
					Actor:     "SuperMart",
					Role:      "Retailer",
					Timestamp: "2025-10-05T09:12:00Z",
					Note:      "Received - packaging intact",
					Image:     "/demo/retail1.jpg",
					Hash:      "b3e9f2a1c4d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f",
					LedgerRef: "0x2F5B8E1C4A7D3E6F9B2C5D8E1A4B7C0D3E6F9A2B",
				},
			},
		},
		{
			ID:            "CHT-002-XYZ",
			ProductName:   "ColdVax",
			SKU:           "CV-001",
			Origin:        "MediCore Labs",
			CreatedAt:     "2025-09-28T07:20:00Z",
			BaselineImage: "/demo/coldvax.jpg",
			Events: []models.Event{
				{
					ID:        "evt-3",
					Actor:     "ChillTransport",
					Role:      "3PL",
					Timestamp: "2025-09-29T14:30:00Z",
					Note:      "Minor dent on corner",
					Image:     "/demo/coldvax-transit.jpg",
					Hash:      "c1d2e3f4a5b6c7d8e9f0a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d",
					LedgerRef: "0x4D7A2E5B8C1F3A6E9B2D5C8E1A4F7B0C3D6E9F2A",
				},
			},
		},
		{
			ID:            "CHT-DEMO",
			ProductName:   "Generic Demo Product",
			SKU:           "DEMO-001",
			Origin:        "Demo Manufacturing Co.",
			CreatedAt:     "2025-10-05T10:00:00Z",
			BaselineImage: "/demo/generic.jpg",
			Events: []models.Event{
				{
					ID:        "evt-4",
					Actor:     "WarehouseA",
					Role:      "Warehouse",
					Timestamp: "2025-10-06T08:30:00Z",
					Note:      "Initial warehouse scan",
					Image:     "/demo/warehouse.jpg",
					Hash:      "d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2c3d4e",
					LedgerRef: "0x9E2B5C8F1A4D7E0B3C6F9A2D5E8B1C4F7A0D3E6F",
				},
				{
					ID:        "evt-5",
					Actor:     "RetailChain",
					Role:      "Retailer",
					Timestamp: "2025-10-08T16:45:00Z",
					Note:      "Received at retail location",
					Image:     "/demo/retail.jpg",
					Hash:      "e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2e3f4a5b6c7d8e9f0a1b2c3d4e5f",
					LedgerRef: "0x3C6F9A2E5B8D1F4A7C0E3B6D9F2A5C8E1B4D7F0A",
				},
			},
		},
	}
}
