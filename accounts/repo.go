package accounts

type Repo interface {
	Upsert(account Account) error
	GetByID(id string) (Account, error)
	GetByEmail(email string) (Account, error)
	List() ([]Account, error)
	Delete(id string) error
}
