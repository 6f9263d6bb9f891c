// Copyright (c) 2025 EFramework Organization. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package XBench

import (
	"context"
	"errors"
	"sort"
)

// testUser 是内存存储的用户模型。
type testUser struct {
	ID        int
	Name      string
	Addresses []*testAddress
}

// testAddress 是内存存储的地址模型。
type testAddress struct {
	ID      int
	UserID  int
	Address string
}

var errTestStore = errors.New("test store failure")

// testStore 是用于测试的内存存储，记录了每个操作的调用情况。
type testStore struct {
	users     map[int]string // 用户表
	addresses map[int]*testAddress
	nextUser  int
	nextAddr  int

	setupCount    int
	teardownCount int
	bulkBefore    int    // 批量插入前的用户数量
	bulkCalls     int    // 批量插入的调用次数
	failOn        string // 指定失败的操作
	teardownErr   error
}

func newTestStore() *testStore {
	return &testStore{users: map[int]string{}, addresses: map[int]*testAddress{}}
}

func (s *testStore) fail(op string) error {
	if s.failOn == op {
		return errTestStore
	}
	return nil
}

func (s *testStore) Name() string { return "Memory" }

func (s *testStore) Setup(ctx context.Context) error {
	s.setupCount++
	return s.fail("Setup")
}

func (s *testStore) Teardown(ctx context.Context) error {
	s.teardownCount++
	return s.teardownErr
}

func (s *testStore) NewUser(name string) *testUser { return &testUser{Name: name} }

func (s *testStore) InsertUser(ctx context.Context, user *testUser) error {
	if err := s.fail("InsertUser"); err != nil {
		return err
	}
	s.nextUser++
	user.ID = s.nextUser
	s.users[user.ID] = user.Name
	return nil
}

func (s *testStore) BulkInsertUsers(ctx context.Context, users []*testUser) error {
	s.bulkCalls++
	s.bulkBefore = len(s.users)
	for _, user := range users {
		s.nextUser++
		s.users[s.nextUser] = user.Name
	}
	return nil
}

func (s *testStore) ListUsers(ctx context.Context) ([]*testUser, error) {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	users := make([]*testUser, 0, len(ids))
	for _, id := range ids {
		users = append(users, &testUser{ID: id, Name: s.users[id]})
	}
	return users, nil
}

func (s *testStore) NewAddress(user *testUser, text string) *testAddress {
	return &testAddress{UserID: user.ID, Address: text}
}

func (s *testStore) InsertAddress(ctx context.Context, address *testAddress) error {
	if _, ok := s.users[address.UserID]; !ok {
		return errTestStore
	}
	s.nextAddr++
	address.ID = s.nextAddr
	s.addresses[address.ID] = &testAddress{ID: address.ID, UserID: address.UserID, Address: address.Address}
	return nil
}

func (s *testStore) ListUsersWithAddresses(ctx context.Context) ([]*testUser, error) {
	users, _ := s.ListUsers(ctx)
	index := make(map[int]*testUser, len(users))
	for _, user := range users {
		index[user.ID] = user
	}
	for _, address := range s.addresses {
		if user := index[address.UserID]; user != nil {
			user.Addresses = append(user.Addresses, &testAddress{ID: address.ID, UserID: address.UserID, Address: address.Address})
		}
	}
	return users, nil
}

func (s *testStore) Addresses(user *testUser) []*testAddress { return user.Addresses }

func (s *testStore) SetAddress(address *testAddress, text string) { address.Address = text }

func (s *testStore) UpdateAddress(ctx context.Context, address *testAddress) error {
	if err := s.fail("UpdateAddress"); err != nil {
		return err
	}
	s.addresses[address.ID].Address = address.Address
	return nil
}

func (s *testStore) ClearAddresses(ctx context.Context) error {
	s.addresses = map[int]*testAddress{}
	return nil
}

func (s *testStore) ClearUsers(ctx context.Context) error {
	s.users = map[int]string{}
	return nil
}

func (s *testStore) CountUsers(ctx context.Context) (int, error) { return len(s.users), nil }

func (s *testStore) CountAddresses(ctx context.Context) (int, error) { return len(s.addresses), nil }
