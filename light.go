package forge

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxLights is the number of light slots in a context.
const MaxLights = 8

// Light is one fixed-function light source. Colors are RGBA in [0, 1].
// Position and SpotDirection are in eye coordinates: they are transformed
// by the modelview matrix current when they are set.
type Light struct {
	Enabled  bool
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4

	// Position with W == 0 is a direction towards a light at infinity.
	Position mgl32.Vec4

	SpotDirection mgl32.Vec3
	SpotExponent  float32

	// SpotCutoff is the cone half-angle in degrees; 180 disables the cone.
	SpotCutoff float32
}

// Material describes how one polygon side reflects light.
type Material struct {
	Ambient   mgl32.Vec4
	Diffuse   mgl32.Vec4
	Specular  mgl32.Vec4
	Emission  mgl32.Vec4
	Shininess float32
}

func defaultLights() [MaxLights]Light {
	var ls [MaxLights]Light
	for i := range ls {
		ls[i] = Light{
			Ambient:       mgl32.Vec4{0, 0, 0, 1},
			Diffuse:       mgl32.Vec4{0, 0, 0, 1},
			Specular:      mgl32.Vec4{0, 0, 0, 1},
			Position:      mgl32.Vec4{0, 0, 1, 0},
			SpotDirection: mgl32.Vec3{0, 0, -1},
			SpotCutoff:    180,
		}
	}
	ls[0].Diffuse = mgl32.Vec4{1, 1, 1, 1}
	ls[0].Specular = mgl32.Vec4{1, 1, 1, 1}
	return ls
}

func defaultMaterial() Material {
	return Material{
		Ambient:  mgl32.Vec4{0.2, 0.2, 0.2, 1},
		Diffuse:  mgl32.Vec4{0.8, 0.8, 0.8, 1},
		Specular: mgl32.Vec4{0, 0, 0, 1},
		Emission: mgl32.Vec4{0, 0, 0, 1},
	}
}

// LightParam names a light parameter.
type LightParam uint8

// Light parameters. Colors and LightPosition are four floats,
// LightSpotDirection three, the spot exponent and cutoff one.
const (
	LightAmbient LightParam = iota + 1
	LightDiffuse
	LightSpecular
	LightPosition
	LightSpotDirection
	LightSpotExponent
	LightSpotCutoff
)

// MaterialParam names a material parameter.
type MaterialParam uint8

// Material parameters. MaterialAmbientAndDiffuse sets both colors at once.
const (
	MaterialAmbient MaterialParam = iota + 1
	MaterialDiffuse
	MaterialSpecular
	MaterialEmission
	MaterialShininess
	MaterialAmbientAndDiffuse
)

func (c *Context) light(op string, i int) *Light {
	if i < 0 || i >= MaxLights {
		c.setError(InvalidOperation, op, fmt.Sprintf("light %d out of range", i))
		return nil
	}
	return &c.lights[i]
}

// EnableLight turns on light i.
func (c *Context) EnableLight(i int) {
	if !c.checkOpen("EnableLight") {
		return
	}
	if l := c.light("EnableLight", i); l != nil {
		l.Enabled = true
	}
}

// DisableLight turns off light i.
func (c *Context) DisableLight(i int) {
	if !c.checkOpen("DisableLight") {
		return
	}
	if l := c.light("DisableLight", i); l != nil {
		l.Enabled = false
	}
}

// IsLightEnabled reports whether light i is on.
func (c *Context) IsLightEnabled(i int) bool {
	l := c.light("IsLightEnabled", i)
	return l != nil && l.Enabled
}

// Light returns a copy of light i.
func (c *Context) Light(i int) Light {
	if l := c.light("Light", i); l != nil {
		return *l
	}
	return Light{}
}

// Lightf sets a scalar parameter of light i: LightSpotExponent in
// [0, 128] or LightSpotCutoff in [0, 90] or exactly 180.
func (c *Context) Lightf(i int, p LightParam, v float32) {
	if !c.checkOpen("Lightf") {
		return
	}
	l := c.light("Lightf", i)
	if l == nil {
		return
	}
	switch p {
	case LightSpotExponent:
		if v < 0 || v > 128 {
			c.setError(InvalidOperation, "Lightf", fmt.Sprintf("spot exponent %g outside [0, 128]", v))
			return
		}
		l.SpotExponent = v
	case LightSpotCutoff:
		if (v < 0 || v > 90) && v != 180 {
			c.setError(InvalidOperation, "Lightf", fmt.Sprintf("spot cutoff %g outside [0, 90]", v))
			return
		}
		l.SpotCutoff = v
	default:
		c.setError(InvalidEnum, "Lightf", fmt.Sprintf("parameter %d is not scalar", p))
	}
}

// Lightfv sets a parameter of light i from v. Colors and LightPosition
// take four values, LightSpotDirection three, scalars one.
func (c *Context) Lightfv(i int, p LightParam, v []float32) {
	if !c.checkOpen("Lightfv") {
		return
	}
	l := c.light("Lightfv", i)
	if l == nil {
		return
	}
	need := 4
	switch p {
	case LightAmbient, LightDiffuse, LightSpecular, LightPosition:
	case LightSpotDirection:
		need = 3
	case LightSpotExponent, LightSpotCutoff:
		need = 1
	default:
		c.setError(InvalidEnum, "Lightfv", fmt.Sprintf("unknown light parameter %d", p))
		return
	}
	if len(v) < need {
		c.setError(InvalidOperation, "Lightfv", fmt.Sprintf("parameter %d needs %d values, got %d", p, need, len(v)))
		return
	}

	mv := c.modelview.Top()
	switch p {
	case LightAmbient:
		l.Ambient = mgl32.Vec4{v[0], v[1], v[2], v[3]}
	case LightDiffuse:
		l.Diffuse = mgl32.Vec4{v[0], v[1], v[2], v[3]}
	case LightSpecular:
		l.Specular = mgl32.Vec4{v[0], v[1], v[2], v[3]}
	case LightPosition:
		l.Position = mv.Mul4x1(mgl32.Vec4{v[0], v[1], v[2], v[3]})
	case LightSpotDirection:
		l.SpotDirection = mv.Mat3().Mul3x1(mgl32.Vec3{v[0], v[1], v[2]})
	default:
		c.Lightf(i, p, v[0])
	}
}

func (c *Context) materialFaces(op string, f Face) []*Material {
	switch f {
	case Front:
		return []*Material{&c.materials[0]}
	case Back:
		return []*Material{&c.materials[1]}
	case FrontAndBack:
		return []*Material{&c.materials[0], &c.materials[1]}
	}
	c.setError(InvalidEnum, op, "unknown face "+f.String())
	return nil
}

// Material returns a copy of the material of face Front or Back.
func (c *Context) Material(f Face) Material {
	switch f {
	case Front:
		return c.materials[0]
	case Back:
		return c.materials[1]
	}
	c.setError(InvalidEnum, "Material", "face must be Front or Back, got "+f.String())
	return Material{}
}

// Materialf sets MaterialShininess, in [0, 128], for the given faces.
func (c *Context) Materialf(f Face, p MaterialParam, v float32) {
	if !c.checkOpen("Materialf") {
		return
	}
	if p != MaterialShininess {
		c.setError(InvalidEnum, "Materialf", fmt.Sprintf("parameter %d is not scalar", p))
		return
	}
	if v < 0 || v > 128 {
		c.setError(InvalidOperation, "Materialf", fmt.Sprintf("shininess %g outside [0, 128]", v))
		return
	}
	for _, m := range c.materialFaces("Materialf", f) {
		m.Shininess = v
	}
}

// Materialfv sets a material parameter for the given faces. Colors take
// four values, MaterialShininess one.
func (c *Context) Materialfv(f Face, p MaterialParam, v []float32) {
	if !c.checkOpen("Materialfv") {
		return
	}
	need := 4
	switch p {
	case MaterialAmbient, MaterialDiffuse, MaterialSpecular, MaterialEmission, MaterialAmbientAndDiffuse:
	case MaterialShininess:
		need = 1
	default:
		c.setError(InvalidEnum, "Materialfv", fmt.Sprintf("unknown material parameter %d", p))
		return
	}
	if len(v) < need {
		c.setError(InvalidOperation, "Materialfv", fmt.Sprintf("parameter %d needs %d values, got %d", p, need, len(v)))
		return
	}
	if p == MaterialShininess {
		c.Materialf(f, p, v[0])
		return
	}

	col := mgl32.Vec4{v[0], v[1], v[2], v[3]}
	for _, m := range c.materialFaces("Materialfv", f) {
		switch p {
		case MaterialAmbient:
			m.Ambient = col
		case MaterialDiffuse:
			m.Diffuse = col
		case MaterialSpecular:
			m.Specular = col
		case MaterialEmission:
			m.Emission = col
		case MaterialAmbientAndDiffuse:
			m.Ambient, m.Diffuse = col, col
		}
	}
}

// =============================================================================
// Shading
// =============================================================================

// lightModel is the lighting state captured for one primitive.
type lightModel struct {
	lights    []Light
	materials [2]Material
}

func (c *Context) snapshotLights() *lightModel {
	lm := &lightModel{materials: c.materials}
	for _, l := range c.lights {
		if !l.Enabled {
			continue
		}
		if l.Position[3] == 0 {
			l.Position = normalize(l.Position.Vec3()).Vec4(0)
		}
		l.SpotDirection = normalize(l.SpotDirection)
		lm.lights = append(lm.lights, l)
	}
	return lm
}

// normalize returns v scaled to unit length, or v itself if it is zero.
func normalize(v mgl32.Vec3) mgl32.Vec3 {
	if l := v.Len(); l > 0 {
		return v.Mul(1 / l)
	}
	return v
}

func mulVec4(a, b mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// shade returns the lit color of a fragment with base color base, eye-space
// normal n and eye-space position pos.
//
// Ambient and diffuse terms are modulated by the base color; the material
// emission and the specular term are added on top. Back faces use the back
// material with the normal flipped.
func (lm *lightModel) shade(base mgl32.Vec4, n, pos mgl32.Vec3, front bool) mgl32.Vec4 {
	m := &lm.materials[0]
	if !front {
		m = &lm.materials[1]
		n = n.Mul(-1)
	}
	n = normalize(n)
	view := normalize(pos.Mul(-1))
	if view == (mgl32.Vec3{}) {
		view = mgl32.Vec3{0, 0, 1}
	}

	var diffuse, specular mgl32.Vec3
	for i := range lm.lights {
		l := &lm.lights[i]

		var dir mgl32.Vec3
		atten := float32(1)
		if l.Position[3] == 0 {
			dir = l.Position.Vec3()
		} else {
			dir = normalize(l.Position.Vec3().Mul(1 / l.Position[3]).Sub(pos))
			if l.SpotCutoff < 180 {
				cos := dir.Mul(-1).Dot(l.SpotDirection)
				if cos < float32(math.Cos(float64(mgl32.DegToRad(l.SpotCutoff)))) {
					continue
				}
				atten = float32(math.Pow(float64(max(cos, 0)), float64(l.SpotExponent)))
			}
		}

		amb := mulVec4(l.Ambient, m.Ambient).Vec3()
		ndotl := max(n.Dot(dir), 0)
		dif := mulVec4(l.Diffuse, m.Diffuse).Vec3().Mul(ndotl)
		diffuse = diffuse.Add(amb.Add(dif).Mul(atten))

		if ndotl > 0 {
			r := n.Mul(2 * ndotl).Sub(dir)
			s := float32(math.Pow(float64(max(r.Dot(view), 0)), float64(m.Shininess)))
			specular = specular.Add(mulVec4(l.Specular, m.Specular).Vec3().Mul(s * atten))
		}
	}

	out := m.Emission.Vec3().
		Add(mgl32.Vec3{diffuse[0] * base[0], diffuse[1] * base[1], diffuse[2] * base[2]}).
		Add(specular)
	return out.Vec4(base[3])
}
