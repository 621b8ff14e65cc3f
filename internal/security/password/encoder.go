package password

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Encoder es la frontera única de manejo de passwords antes de persistir.
// Toda escritura de credenciales pasa por acá, así el esquema de almacenamiento
// se cambia en un solo lugar.
type Encoder interface {
	// Encode transforma el password plano a su forma persistible.
	Encode(plain string) (string, error)

	// Name identifica el encoder ("plain" | "argon2id").
	Name() string
}

// PlainEncoder persiste el password tal como llega, sin hashear.
// Es el comportamiento heredado del aprovisionador original; queda visible
// y reemplazable vía security.password_encoder en la configuración.
type PlainEncoder struct{}

func (PlainEncoder) Encode(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	return plain, nil
}

func (PlainEncoder) Name() string { return "plain" }

// Argon2Encoder persiste un PHC string argon2id.
type Argon2Encoder struct {
	Params Params
}

func (e Argon2Encoder) Encode(plain string) (string, error) {
	p := e.Params
	if p.KeyLen == 0 {
		p = Default
	}
	return Hash(p, plain)
}

func (Argon2Encoder) Name() string { return "argon2id" }

// ForName resuelve un Encoder por nombre. Nombre vacío o desconocido cae en
// "plain" para no romper instalaciones existentes.
func ForName(name string) Encoder {
	if name == "argon2id" {
		return Argon2Encoder{Params: Default}
	}
	return PlainEncoder{}
}

// GenerateSecret genera un password aleatorio de 16 caracteres hex.
// Es la única vez que ese secreto existe en claro fuera de la base:
// el caller debe mostrarlo exactamente una vez.
func GenerateSecret() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
