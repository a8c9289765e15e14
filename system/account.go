package system

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"webup/humprep/domain"
)

// Account is a resolved service account. A nil *Account makes ownership
// operations no-ops, which keeps the filesystem code testable without root.
type Account struct {
	Name string
	UID  int
	GID  int
}

// LookupAccount resolves an existing OS user into an Account.
func LookupAccount(name string) (*Account, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return nil, err
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("unexpected uid '%s' for user %s", u.Uid, name)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("unexpected gid '%s' for user %s", u.Gid, name)
	}

	return &Account{Name: name, UID: uid, GID: gid}, nil
}

// Own sets ownership of a path to the account. No-op on a nil account.
func (a *Account) Own(path string) error {
	if a == nil {
		return nil
	}

	return os.Chown(path, a.UID, a.GID)
}

// EnsureServiceAccount creates the unprivileged service account if it does
// not exist and returns it. The account gets no extra privileges at
// creation time.
func EnsureServiceAccount(name string) (*Account, error) {
	if acct, err := LookupAccount(name); err == nil {
		return acct, nil
	}

	cmd := domain.NewCommand([]string{"useradd", "--system", "--shell", "/usr/sbin/nologin", name})
	if err := cmd.Execute(); err != nil {
		return nil, err
	}

	return LookupAccount(name)
}

// EnsureRuntimeGroup makes sure the runtime-access group exists and that the
// service account is a member. It returns true when the membership was just
// added: in that case the change only takes effect with a new login session,
// so a runtime check right after may legitimately fail.
func EnsureRuntimeGroup(account string, group string) (bool, error) {
	if _, err := user.LookupGroup(group); err != nil {
		cmd := domain.NewCommand([]string{"groupadd", group})
		if err := cmd.Execute(); err != nil {
			return false, err
		}
	}

	member, err := isMember(account, group)
	if err != nil {
		return false, err
	}
	if member {
		return false, nil
	}

	cmd := domain.NewCommand([]string{"usermod", "-aG", group, account})
	if err := cmd.Execute(); err != nil {
		return false, err
	}

	return true, nil
}

// CanUseRuntime checks that the account can talk to the container runtime.
func CanUseRuntime(account string) error {
	cmd := domain.NewUserCommand(account, []string{"docker", "info"})
	_, err := cmd.GetResult()

	return err
}

func isMember(account string, group string) (bool, error) {
	cmd := domain.NewCommand([]string{"id", "-nG", account})
	output, err := cmd.GetResult()
	if err != nil {
		return false, err
	}

	for _, g := range strings.Fields(output) {
		if g == group {
			return true, nil
		}
	}

	return false, nil
}
