package conversation

// ActiveLocks returns the number of users with a dispatch in progress or waiting
func (m *Machine) ActiveLocks() int {
	m.locksMux.Lock()
	defer m.locksMux.Unlock()
	return len(m.userLocks)
}
