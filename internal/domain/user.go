package domain

// User is an account row from the usuarios table. This subsystem only reads
// it to authenticate admin callers; account management lives elsewhere.
type User struct {
	ID        int64
	Nome      string
	Email     string
	SenhaHash string
	Tipo      string
	Ativo     bool
}

const TipoAdmin = "admin"
