package config

// UniversalTraitName is the implicit base trait every type and trait
// composes. It is always the first application step of a linearization.
const UniversalTraitName = "Any"

// DeclFileExtensions are the recognized declaration-set file extensions.
var DeclFileExtensions = []string{".yaml", ".yml"}

// BundleFileExt is the compiled declaration bundle extension.
const BundleFileExt = ".kkb"

// ReverseOpPrefix prefixes the member name of a reverse binary operator
// implementation (`r+` answers for the right operand of `+`).
const ReverseOpPrefix = "r"
