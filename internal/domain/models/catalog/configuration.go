package catalog

import (
	"time"
)

// Vec3 is an xyz triple used for positions, rotations and scales.
type Vec3 [3]float64

// Transform captures the model placement in the editor scene.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// Materials captures the PBR material overrides applied to the model.
// Metalness and Roughness are clamped to [0,1] by validation.
type Materials struct {
	Color     string  `json:"color"`
	Metalness float64 `json:"metalness"`
	Roughness float64 `json:"roughness"`
}

// Lighting captures the scene lighting rig.
type Lighting struct {
	AmbientIntensity   float64 `json:"ambientIntensity"`
	SpotlightIntensity float64 `json:"spotlightIntensity"`
	SpotlightPosition  Vec3    `json:"spotlightPosition"`
	SpotlightColor     string  `json:"spotlightColor"`
}

// Configuration is a saved snapshot of transform/material/lighting state for
// a product. The share token is generated at creation and is the sole
// capability needed to fetch the configuration anonymously once IsPublic.
type Configuration struct {
	ID          string    `json:"id" db:"id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	Name        string    `json:"name" db:"name"`
	VariantName string    `json:"variant_name" db:"variant_name"`
	Transform   Transform `json:"transform" db:"transform"`
	Materials   Materials `json:"materials" db:"materials"`
	Lighting    Lighting  `json:"lighting" db:"lighting"`
	ShareToken  *string   `json:"share_token" db:"share_token"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	OwnerID     string    `json:"user_id" db:"user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SharedConfiguration is the payload resolved from a public share token:
// the configuration plus its joined product. Product is nil when the
// product record has been deleted out from under the configuration.
type SharedConfiguration struct {
	Configuration Configuration `json:"configuration"`
	Product       *Product      `json:"product"`
}

// DefaultTransform returns the editor defaults for a fresh configuration.
func DefaultTransform() Transform {
	return Transform{
		Position: Vec3{0, 0, 0},
		Rotation: Vec3{0, 0, 0},
		Scale:    Vec3{1, 1, 1},
	}
}

// DefaultMaterials returns the editor defaults for a fresh configuration.
func DefaultMaterials() Materials {
	return Materials{
		Color:     "#ffffff",
		Metalness: 0.5,
		Roughness: 0.5,
	}
}

// DefaultLighting returns the editor defaults for a fresh configuration.
func DefaultLighting() Lighting {
	return Lighting{
		AmbientIntensity:   0.5,
		SpotlightIntensity: 1,
		SpotlightPosition:  Vec3{10, 10, 10},
		SpotlightColor:     "#ffffff",
	}
}
