package unit

import "fmt"

// Physical constants (CODATA 2018, exact by definition).
const (
	// PlanckConstant in J*s.
	PlanckConstant = 6.62607015e-34
	// SpeedOfLight in m/s.
	SpeedOfLight = 2.99792458e8
	// AvogadroConstant in 1/mol.
	AvogadroConstant = 6.02214076e23
)

// photonEnergyPerMole is h*c*N_A in J*m/mol: the energy of one mole of
// photons times their wavelength in meters.
const photonEnergyPerMole = PlanckConstant * SpeedOfLight * AvogadroConstant

// IrradianceToPhotonFlux converts spectral irradiance samples to molar
// photon flux, sample by sample. values must be convertible to
// SpectralIrradiance and wavelengths to Nanometer; both must have the same
// length. The result is in MolarPhotonFlux units.
func IrradianceToPhotonFlux(values, wavelengths Array) (Array, error) {
	v, w, err := photonArgs(values, wavelengths, SpectralIrradiance)
	if err != nil {
		return Array{}, err
	}
	out := make([]float64, len(v.Data))
	for i := range out {
		lambdaM := w.Data[i] * 1e-9
		out[i] = v.Data[i] * lambdaM / photonEnergyPerMole
	}
	return Array{Data: out, Unit: MolarPhotonFlux}, nil
}

// PhotonFluxToIrradiance is the inverse of IrradianceToPhotonFlux: values
// must be convertible to MolarPhotonFlux; the result is in
// SpectralIrradiance units.
func PhotonFluxToIrradiance(values, wavelengths Array) (Array, error) {
	v, w, err := photonArgs(values, wavelengths, MolarPhotonFlux)
	if err != nil {
		return Array{}, err
	}
	out := make([]float64, len(v.Data))
	for i := range out {
		lambdaM := w.Data[i] * 1e-9
		out[i] = v.Data[i] * photonEnergyPerMole / lambdaM
	}
	return Array{Data: out, Unit: SpectralIrradiance}, nil
}

func photonArgs(values, wavelengths Array, want Unit) (v, w Array, err error) {
	v, err = values.To(want)
	if err != nil {
		return Array{}, Array{}, err
	}
	w, err = wavelengths.To(Nanometer)
	if err != nil {
		return Array{}, Array{}, err
	}
	if len(v.Data) != len(w.Data) {
		return Array{}, Array{}, fmt.Errorf("unit: values and wavelengths length mismatch: %d != %d", len(v.Data), len(w.Data))
	}
	return v, w, nil
}
