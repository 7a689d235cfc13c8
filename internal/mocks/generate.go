package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ProfileRepository --dir ../domain/profile --output domain/profile --outpkg profilemock --filename profile_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name SubscriptionRepository --dir ../domain/subscription --output domain/subscription --outpkg subscriptionmock --filename subscription_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name CompetitionsAdapter --dir ../adapter --output adapter --outpkg adaptermock --filename competitions_adapter_mock.go
