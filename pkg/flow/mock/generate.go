package mock

//go:generate go install github.com/golang/mock/mockgen@v1.6.0
//go:generate mockgen -package mock -destination ./api.mock.go github.com/norlig/bankid/pkg/flow APIClient
//go:generate mockgen -package mock -destination ./events.mock.go github.com/norlig/bankid/pkg/flow EventTrigger
