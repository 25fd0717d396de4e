package rbac

import (
	"github.com/casbin/casbin/v2"
)

// Service menjawab pertanyaan "boleh tidak role ini melakukan aksi ini".
// Keputusan autentikasinya sendiri (siapa caller, role apa) sudah dibuat
// di boundary; service ini hanya mengeksekusi policy.
type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
